package nn

import "github.com/armelito60/IntroToDLPyTorch/internal/tensor"

// Parameter is a named learnable tensor with an optional accumulated
// gradient. Optimizers look gradients up by the parameter's raw tensor
// in the map returned from the tape.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
	grad   *tensor.RawTensor
}

// NewParameter wraps a tensor as a learnable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter's name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the underlying tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Grad returns the stored gradient, or nil.
func (p *Parameter[B]) Grad() *tensor.RawTensor {
	return p.grad
}

// SetGrad stores a gradient.
func (p *Parameter[B]) SetGrad(grad *tensor.RawTensor) {
	p.grad = grad
}

// ZeroGrad clears the stored gradient.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}
