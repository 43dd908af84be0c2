package nn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/zoo/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input, creating a
// sequential pipeline of transformations. Compatibility between neighbours is
// not checked when modules are added; it surfaces on the first Forward,
// Initialize or OutputShape call.
//
// Example:
//
//	model := nn.NewSequential[B](
//	    nn.NewLinear(128, backend),
//	    nn.NewReLU[B](),
//	    nn.NewLinear(10, backend),
//	)
//
//	output := model.Forward(input)
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	output := input

	for _, module := range s.modules {
		output = module.Forward(output)
	}

	return output
}

// Parameters returns all trainable parameters from all modules, in order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]

	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}

	return params
}

// Initialize initialises every module, threading the inferred shape through.
func (s *Sequential[B]) Initialize(input tensor.Shape) error {
	_, err := s.walk(input, func(m Module[B], in tensor.Shape) error {
		return m.Initialize(in)
	})
	return err
}

// OutputShape infers the shape produced by the last module.
func (s *Sequential[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	return s.walk(input, nil)
}

// NumParameters sums the parameter counts of all modules.
func (s *Sequential[B]) NumParameters(input tensor.Shape) (int, error) {
	total := 0
	_, err := s.walk(input, func(m Module[B], in tensor.Shape) error {
		n, err := m.NumParameters(in)
		total += n
		return err
	})
	return total, err
}

// walk threads a shape through the modules, calling visit with each
// module's input shape. Errors are prefixed with the module index.
func (s *Sequential[B]) walk(input tensor.Shape, visit func(Module[B], tensor.Shape) error) (tensor.Shape, error) {
	shape := input
	for i, m := range s.modules {
		if visit != nil {
			if err := visit(m, shape); err != nil {
				return nil, errors.Wrapf(err, "sequential[%d]", i)
			}
		}
		out, err := m.OutputShape(shape)
		if err != nil {
			return nil, errors.Wrapf(err, "sequential[%d]", i)
		}
		shape = out
	}
	return shape, nil
}

// Add appends modules to the sequence and returns s for chaining.
//
//	net := nn.NewSequential[B]()
//	net.Add(nn.NewConv2D(cfg, backend), nn.NewReLU[B]())
func (s *Sequential[B]) Add(modules ...Module[B]) *Sequential[B] {
	s.modules = append(s.modules, modules...)
	return s
}

// Len returns the number of modules in the sequence.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[B]) Module(index int) Module[B] {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}

// Children returns the contained modules.
func (s *Sequential[B]) Children() []Module[B] {
	return s.modules
}

// String returns a string representation of the container.
func (s *Sequential[B]) String() string {
	return fmt.Sprintf("Sequential(%d modules)", len(s.modules))
}
