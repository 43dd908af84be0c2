package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/zoo/internal/tensor"
)

// Dropout randomly zeroes elements with probability rate while training and
// scales the survivors by 1/(1-rate). In inference mode it is the identity.
//
// Modules start in inference mode; use SetTraining to switch.
type Dropout[B tensor.Backend] struct {
	stateless[B]
	rate     float64
	training bool
}

// NewDropout creates a dropout layer. Panics unless 0 <= rate < 1.
func NewDropout[B tensor.Backend](rate float64) *Dropout[B] {
	if rate < 0 || rate >= 1 {
		panic(fmt.Sprintf("dropout: rate %v outside [0, 1)", rate))
	}
	return &Dropout[B]{stateless: stateless[B]{name: "Dropout"}, rate: rate}
}

// Rate returns the drop probability.
func (d *Dropout[B]) Rate() float64 {
	return d.rate
}

// SetTraining switches between training and inference behaviour.
func (d *Dropout[B]) SetTraining(training bool) {
	d.training = training
}

// Training reports whether the layer is in training mode.
func (d *Dropout[B]) Training() bool {
	return d.training
}

// Forward applies dropout in training mode and returns input unchanged otherwise.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.training || d.rate == 0 {
		return input
	}

	keep := float32(1 / (1 - d.rate))
	mask := tensor.Zeros[float32](input.Shape(), input.Backend())
	data := mask.Data()
	for i := range data {
		//nolint:gosec // G404: math/rand is fine for dropout masks
		if rand.Float64() >= d.rate {
			data[i] = keep
		}
	}

	return input.Mul(mask)
}

// String returns a string representation of the layer.
func (d *Dropout[B]) String() string {
	return fmt.Sprintf("Dropout(rate=%g)", d.rate)
}
