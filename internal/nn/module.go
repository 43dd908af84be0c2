// Package nn implements the neural network modules the model zoo is built from.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable tensor with a gradient slot
//   - Layers: Conv2D, Linear, MaxPool2D, AvgPool2D, GlobalAvgPool2D, Flatten, Dropout
//   - Activations: ReLU, Sigmoid, Tanh
//   - Containers: Sequential, Parallel
//
// Layers are configured at construction time but allocate their parameters
// lazily: the input channel or feature count is taken from the first input
// shape seen, either through Initialize or on the first Forward call.
// OutputShape and NumParameters answer shape questions without allocating.
package nn

import (
	"github.com/born-ml/zoo/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules compose into architectures:
//
//	model := nn.NewSequential[B](
//	    nn.NewConv2D(nn.Conv2DConfig{Filters: 6, Kernel: [2]int{5, 5}}, backend),
//	    nn.NewReLU[B](),
//	    nn.NewFlatten[B](),
//	    nn.NewLinear(10, backend),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	// Uninitialised parameters are allocated from the input shape first.
	// Panics if the input shape is incompatible with the module.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	// Returns an empty slice for parameterless modules and for lazy modules
	// that have not been initialised yet.
	Parameters() []*Parameter[B]

	// Initialize allocates parameters for the given input shape.
	// Calling it again with a compatible shape is a no-op.
	Initialize(input tensor.Shape) error

	// OutputShape infers the output shape for the given input shape.
	OutputShape(input tensor.Shape) (tensor.Shape, error)

	// NumParameters counts the trainable scalars the module holds, or would
	// hold, once initialised for the given input shape.
	NumParameters(input tensor.Shape) (int, error)

	// String returns a one-line description of the module.
	String() string
}

// Container is implemented by modules that hold child modules.
type Container[B tensor.Backend] interface {
	Module[B]
	Children() []Module[B]
}

// Trainable is implemented by modules whose behaviour differs between
// training and inference, such as Dropout.
type Trainable interface {
	SetTraining(training bool)
}

// Leaves returns every non-container module reachable from m in depth-first order.
func Leaves[B tensor.Backend](m Module[B]) []Module[B] {
	c, ok := m.(Container[B])
	if !ok {
		return []Module[B]{m}
	}

	var leaves []Module[B]
	for _, child := range c.Children() {
		leaves = append(leaves, Leaves(child)...)
	}
	return leaves
}

// SetTraining switches every Trainable module reachable from m.
func SetTraining[B tensor.Backend](m Module[B], training bool) {
	for _, leaf := range Leaves(m) {
		if t, ok := leaf.(Trainable); ok {
			t.SetTraining(training)
		}
	}
}

// countParams sums the element counts of params.
func countParams[B tensor.Backend](params []*Parameter[B]) int {
	n := 0
	for _, p := range params {
		n += p.Tensor().NumElements()
	}
	return n
}
