package nn

import "github.com/armelito60/IntroToDLPyTorch/internal/tensor"

// Activation backends. Activations are optional backend capabilities:
// modules type-assert the input's backend and panic if it lacks the
// operation, which keeps the core Backend interface small.

// ReLUBackend is implemented by backends that support ReLU.
type ReLUBackend interface {
	ReLU(x *tensor.RawTensor) *tensor.RawTensor
}

// SigmoidBackend is implemented by backends that support sigmoid.
type SigmoidBackend interface {
	Sigmoid(x *tensor.RawTensor) *tensor.RawTensor
}

// TanhBackend is implemented by backends that support tanh.
type TanhBackend interface {
	Tanh(x *tensor.RawTensor) *tensor.RawTensor
}

// ReLU applies max(x, 0) elementwise.
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	rb, ok := any(backend).(ReLUBackend)
	if !ok {
		panic("backend " + backend.Name() + " does not support ReLU")
	}
	return tensor.FromRaw[float32](rb.ReLU(input.Raw()), backend)
}

func (r *ReLU[B]) Parameters() []*Parameter[B] { return nil }

// Sigmoid applies 1/(1+exp(-x)) elementwise.
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a sigmoid activation.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

func (s *Sigmoid[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	sb, ok := any(backend).(SigmoidBackend)
	if !ok {
		panic("backend " + backend.Name() + " does not support Sigmoid")
	}
	return tensor.FromRaw[float32](sb.Sigmoid(input.Raw()), backend)
}

func (s *Sigmoid[B]) Parameters() []*Parameter[B] { return nil }

// Tanh applies tanh elementwise.
type Tanh[B tensor.Backend] struct{}

// NewTanh creates a tanh activation.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return &Tanh[B]{}
}

func (t *Tanh[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	tb, ok := any(backend).(TanhBackend)
	if !ok {
		panic("backend " + backend.Name() + " does not support Tanh")
	}
	return tensor.FromRaw[float32](tb.Tanh(input.Raw()), backend)
}

func (t *Tanh[B]) Parameters() []*Parameter[B] { return nil }
