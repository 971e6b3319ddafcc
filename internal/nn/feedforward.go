package nn

import (
	"fmt"

	"github.com/armelito60/IntroToDLPyTorch/internal/serialization"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Arch is the architecture description stored in checkpoints.
type Arch = serialization.Arch

// FeedForward is a fully connected classifier described entirely by
// its layer widths: input, hidden sizes, output. Hidden layers use
// ReLU and optional dropout; the final layer emits raw logits. Because
// the architecture is just these numbers, checkpoints can store them
// and rebuild an identical network on load.
type FeedForward[B tensor.Backend] struct {
	arch serialization.Arch
	seq  *Sequential[B]
}

// NewFeedForward builds the network. Every size must be positive and
// dropout must be in [0, 1); dropout 0 omits the dropout modules.
func NewFeedForward[B tensor.Backend](arch serialization.Arch, backend B) (*FeedForward[B], error) {
	if arch.InputSize <= 0 || arch.OutputSize <= 0 {
		return nil, fmt.Errorf("feedforward: input and output sizes must be positive, got %d and %d",
			arch.InputSize, arch.OutputSize)
	}
	for i, h := range arch.HiddenSizes {
		if h <= 0 {
			return nil, fmt.Errorf("feedforward: hidden size %d must be positive, got %d", i, h)
		}
	}

	seq := NewSequential[B]()
	prev := arch.InputSize
	for _, h := range arch.HiddenSizes {
		linear, err := NewLinear(prev, h, backend)
		if err != nil {
			return nil, err
		}
		seq.Add(linear)
		seq.Add(NewReLU[B]())
		if arch.Dropout > 0 {
			drop, err := NewDropout[B](arch.Dropout)
			if err != nil {
				return nil, err
			}
			seq.Add(drop)
		}
		prev = h
	}
	out, err := NewLinear(prev, arch.OutputSize, backend)
	if err != nil {
		return nil, err
	}
	seq.Add(out)

	return &FeedForward[B]{arch: arch, seq: seq}, nil
}

// Arch returns the architecture description.
func (f *FeedForward[B]) Arch() serialization.Arch {
	return f.arch
}

func (f *FeedForward[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return f.seq.Forward(input)
}

func (f *FeedForward[B]) Parameters() []*Parameter[B] {
	return f.seq.Parameters()
}

// Train enables dropout.
func (f *FeedForward[B]) Train() { f.seq.Train() }

// Eval disables dropout.
func (f *FeedForward[B]) Eval() { f.seq.Eval() }

func (f *FeedForward[B]) StateDict() map[string]*tensor.RawTensor {
	return f.seq.StateDict()
}

func (f *FeedForward[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	return f.seq.LoadStateDict(state)
}

// NumParameters returns the total learnable element count.
func (f *FeedForward[B]) NumParameters() int {
	n := 0
	for _, p := range f.Parameters() {
		n += p.Tensor().NumElements()
	}
	return n
}
