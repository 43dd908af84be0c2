package nn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/zoo/internal/tensor"
)

// Parallel feeds the same input to every branch and concatenates the branch
// outputs along one axis.
//
// Example (channel-wise join of two paths):
//
//	block := nn.NewConcat[B](1,
//	    nn.NewConv2D(nn.Conv2DConfig{Filters: 64, Kernel: [2]int{1, 1}}, backend),
//	    nn.NewMaxPool2D[B](nn.Pool2DConfig{Kernel: [2]int{3, 3}, Stride: [2]int{1, 1}, Padding: [2]int{1, 1}}),
//	)
type Parallel[B tensor.Backend] struct {
	axis     int
	branches []Module[B]
}

// NewConcat creates a Parallel container joining branch outputs along axis.
// Panics when no branch is given.
func NewConcat[B tensor.Backend](axis int, branches ...Module[B]) *Parallel[B] {
	if len(branches) == 0 {
		panic("parallel: at least one branch required")
	}
	return &Parallel[B]{axis: axis, branches: branches}
}

// Axis returns the concatenation axis.
func (p *Parallel[B]) Axis() int {
	return p.axis
}

// Forward runs every branch on input and concatenates the results.
func (p *Parallel[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	outputs := make([]*tensor.Tensor[float32, B], len(p.branches))
	for i, branch := range p.branches {
		outputs[i] = branch.Forward(input)
	}
	return tensor.Cat(outputs, p.axis)
}

// Parameters returns the parameters of every branch, in branch order.
func (p *Parallel[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, branch := range p.branches {
		params = append(params, branch.Parameters()...)
	}
	return params
}

// Initialize initialises every branch with the shared input shape.
func (p *Parallel[B]) Initialize(input tensor.Shape) error {
	for i, branch := range p.branches {
		if err := branch.Initialize(input); err != nil {
			return errors.Wrapf(err, "parallel[%d]", i)
		}
	}
	_, err := p.OutputShape(input)
	return err
}

// OutputShape returns the branch shape with the concatenation axis summed.
// Branches must agree on every other axis.
func (p *Parallel[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	var out tensor.Shape
	axis := 0
	for i, branch := range p.branches {
		shape, err := branch.OutputShape(input)
		if err != nil {
			return nil, errors.Wrapf(err, "parallel[%d]", i)
		}
		if i == 0 {
			if p.axis < -len(shape) || p.axis >= len(shape) {
				return nil, errors.Errorf("parallel: axis %d out of range for %v", p.axis, shape)
			}
			axis = shape.NormalizeAxis(p.axis)
			out = shape.Clone()
			continue
		}
		if len(shape) != len(out) {
			return nil, errors.Errorf("parallel[%d]: rank %d != %d", i, len(shape), len(out))
		}
		for d := range shape {
			if d != axis && shape[d] != out[d] {
				return nil, errors.Errorf("parallel[%d]: output %v does not match %v outside axis %d", i, shape, out, axis)
			}
		}
		out[axis] += shape[axis]
	}
	return out, nil
}

// NumParameters sums the parameter counts of every branch.
func (p *Parallel[B]) NumParameters(input tensor.Shape) (int, error) {
	total := 0
	for i, branch := range p.branches {
		n, err := branch.NumParameters(input)
		if err != nil {
			return 0, errors.Wrapf(err, "parallel[%d]", i)
		}
		total += n
	}
	return total, nil
}

// Children returns the branches.
func (p *Parallel[B]) Children() []Module[B] {
	return p.branches
}

// String returns a string representation of the container.
func (p *Parallel[B]) String() string {
	return fmt.Sprintf("Parallel(%d branches, axis=%d)", len(p.branches), p.axis)
}
