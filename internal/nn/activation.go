package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/zoo/internal/tensor"
)

// stateless carries the Module methods shared by parameterless,
// shape-preserving modules.
type stateless[B tensor.Backend] struct {
	name string
}

func (s *stateless[B]) Parameters() []*Parameter[B] { return nil }

func (s *stateless[B]) Initialize(input tensor.Shape) error {
	_, err := s.OutputShape(input)
	return err
}

func (s *stateless[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	if err := input.Validate(); err != nil {
		return nil, errors.Wrap(err, s.name)
	}
	return input.Clone(), nil
}

func (s *stateless[B]) NumParameters(input tensor.Shape) (int, error) {
	_, err := s.OutputShape(input)
	return 0, err
}

func (s *stateless[B]) String() string {
	return s.name + "()"
}

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// Example:
//
//	relu := nn.NewReLU[B]()
//	output := relu.Forward(input) // All negative values become 0
type ReLU[B tensor.Backend] struct {
	stateless[B]
}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{stateless[B]{name: "ReLU"}}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.ReLU()
}

// Sigmoid is a sigmoid activation module.
//
// Applies the element-wise function: f(x) = 1 / (1 + exp(-x))
type Sigmoid[B tensor.Backend] struct {
	stateless[B]
}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{stateless[B]{name: "Sigmoid"}}
}

// Forward applies sigmoid activation.
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.Sigmoid()
}

// Tanh is a hyperbolic tangent activation module.
type Tanh[B tensor.Backend] struct {
	stateless[B]
}

// NewTanh creates a new Tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return &Tanh[B]{stateless[B]{name: "Tanh"}}
}

// Forward applies tanh activation.
func (t *Tanh[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.Tanh()
}
