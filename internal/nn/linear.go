package nn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/zoo/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input flattened to [batch_size, in_features]
//   - W is the weight matrix with shape [units, in_features]
//   - b is the bias vector with shape [units]
//   - y is the output tensor with shape [batch_size, units]
//
// Inputs of rank > 2 are flattened after the batch axis, so a Linear layer
// can follow a convolution directly. in_features comes from the first input.
//
// Example:
//
//	layer := nn.NewLinear(128, backend)
//
//	input := tensor.Randn[float32](tensor.Shape{32, 784}, backend)
//	output := layer.Forward(input) // shape: [32, 128]
type Linear[B tensor.Backend] struct {
	units      int
	inFeatures int
	weight     *Parameter[B] // [units, in_features]
	bias       *Parameter[B] // [units]
	backend    B
}

// NewLinear creates a new lazily initialised Linear layer with the given
// number of output units. Panics if units is not positive.
func NewLinear[B tensor.Backend](units int, backend B) *Linear[B] {
	if units <= 0 {
		panic(fmt.Sprintf("linear: invalid units %d", units))
	}
	return &Linear[B]{units: units, backend: backend}
}

// Units returns the number of output features.
func (l *Linear[B]) Units() int {
	return l.units
}

func (l *Linear[B]) features(input tensor.Shape) (int, error) {
	if len(input) < 2 {
		return 0, errors.Errorf("linear: expected input of rank >= 2, got %v", input)
	}
	if err := input.Validate(); err != nil {
		return 0, errors.Wrap(err, "linear")
	}
	in := input[1:].NumElements()
	if l.weight != nil && in != l.inFeatures {
		return 0, errors.Errorf("linear: input features %d != initialised features %d", in, l.inFeatures)
	}
	return in, nil
}

// Initialize allocates weight and bias for the input's feature count.
//
// Weights are initialized using Xavier/Glorot uniform distribution.
// Biases are initialized to zeros.
func (l *Linear[B]) Initialize(input tensor.Shape) error {
	in, err := l.features(input)
	if err != nil || l.weight != nil {
		return err
	}

	l.inFeatures = in
	l.weight = NewParameter("weight", Xavier(in, l.units, tensor.Shape{l.units, in}, l.backend))
	l.bias = NewParameter("bias", Zeros(tensor.Shape{l.units}, l.backend))
	return nil
}

// OutputShape returns [batch_size, units].
func (l *Linear[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	if _, err := l.features(input); err != nil {
		return nil, err
	}
	return tensor.Shape{input[0], l.units}, nil
}

// NumParameters returns units*in_features + units.
func (l *Linear[B]) NumParameters(input tensor.Shape) (int, error) {
	in, err := l.features(input)
	if err != nil {
		return 0, err
	}
	return l.units*in + l.units, nil
}

// Forward computes y = x @ W.T + b.
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	mustInitialize[B](l, input.Shape())

	x := input
	if len(input.Shape()) > 2 {
		x = input.Reshape(input.Shape()[0], l.inFeatures)
	}

	return x.MatMul(l.weight.Tensor().T()).Add(l.bias.Tensor())
}

// Parameters returns [weight, bias], or nothing before initialisation.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	if l.weight == nil {
		return nil
	}
	return []*Parameter[B]{l.weight, l.bias}
}

// Weight returns the weight parameter, or nil before initialisation.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter, or nil before initialisation.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// String returns a string representation of the layer.
func (l *Linear[B]) String() string {
	return fmt.Sprintf("Linear(units=%d)", l.units)
}
