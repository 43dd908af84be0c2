package nn

import (
	"github.com/born-ml/zoo/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are tensors whose gradients are supplied from outside the
// package, for example by a training loop, and consumed by the SGD helpers.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	weight.SetGrad(grad)
//	// ... apply update ...
//	weight.ReleaseGrad()
type Parameter[B tensor.Backend] struct {
	name   string                     // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor[float32, B] // The parameter tensor
	grad   *tensor.Tensor[float32, B] // Gradient tensor, nil until set
}

// NewParameter creates a new trainable parameter with no gradient.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Grad returns the gradient tensor, or nil if none has been set.
func (p *Parameter[B]) Grad() *tensor.Tensor[float32, B] {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter[B]) SetGrad(grad *tensor.Tensor[float32, B]) {
	p.grad = grad
}

// ZeroGrad detaches the gradient without touching its storage.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}

// ReleaseGrad frees the gradient's storage and detaches it.
// Any other reference to the gradient's storage, including reshaped views,
// panics on data access.
func (p *Parameter[B]) ReleaseGrad() {
	if p.grad != nil {
		p.grad.Release()
		p.grad = nil
	}
}
