package nn

import (
	"fmt"
	"math/rand"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Dropout zeroes each element with probability p during training and
// scales the survivors by 1/(1-p), so the expected activation is
// unchanged and evaluation needs no rescaling (inverted dropout).
// In eval mode it is the identity.
type Dropout[B tensor.Backend] struct {
	p        float32
	training bool
}

// NewDropout creates a dropout module. p must be in [0, 1).
func NewDropout[B tensor.Backend](p float32) (*Dropout[B], error) {
	if p < 0 || p >= 1 {
		return nil, fmt.Errorf("dropout: probability must be in [0, 1), got %v", p)
	}
	return &Dropout[B]{p: p, training: true}, nil
}

// Train enables dropout.
func (d *Dropout[B]) Train() { d.training = true }

// Eval disables dropout.
func (d *Dropout[B]) Eval() { d.training = false }

// P returns the drop probability.
func (d *Dropout[B]) P() float32 { return d.p }

func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.training || d.p == 0 {
		return input
	}

	mask, err := tensor.New[float32](input.Shape(), input.Backend())
	if err != nil {
		panic(err)
	}
	scale := 1 / (1 - d.p)
	data := mask.Data()
	for i := range data {
		if rand.Float32() >= d.p {
			data[i] = scale
		}
	}
	// The mask multiply goes through the backend, so the tape sees it
	// and gradients are masked the same way as activations.
	return input.Mul(mask)
}

func (d *Dropout[B]) Parameters() []*Parameter[B] { return nil }
