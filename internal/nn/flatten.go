package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/zoo/internal/tensor"
)

// Flatten collapses every axis after the batch axis:
// [batch, d1, d2, ...] -> [batch, d1*d2*...].
type Flatten[B tensor.Backend] struct {
	stateless[B]
}

// NewFlatten creates a new Flatten module.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return &Flatten[B]{stateless[B]{name: "Flatten"}}
}

// OutputShape returns [batch, features].
func (f *Flatten[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	if len(input) == 0 {
		return nil, errors.New("flatten: input needs a batch axis")
	}
	if err := input.Validate(); err != nil {
		return nil, errors.Wrap(err, "flatten")
	}
	return tensor.Shape{input[0], input[1:].NumElements()}, nil
}

// Initialize validates the input shape.
func (f *Flatten[B]) Initialize(input tensor.Shape) error {
	_, err := f.OutputShape(input)
	return err
}

// NumParameters is always zero.
func (f *Flatten[B]) NumParameters(input tensor.Shape) (int, error) {
	_, err := f.OutputShape(input)
	return 0, err
}

// Forward reshapes the input without copying.
func (f *Flatten[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out, err := f.OutputShape(input.Shape())
	if err != nil {
		panic(err.Error())
	}
	return input.Reshape(out...)
}
