package nn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Sequential chains modules, feeding each one's output to the next.
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a container from the given modules.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{modules: modules}
}

// Add appends a module.
func (s *Sequential[B]) Add(m Module[B]) {
	s.modules = append(s.modules, m)
}

// Modules returns the contained modules in order.
func (s *Sequential[B]) Modules() []Module[B] {
	return s.modules
}

func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := input
	for _, m := range s.modules {
		out = m.Forward(out)
	}
	return out
}

func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Train puts all trainable children in training mode.
func (s *Sequential[B]) Train() {
	for _, m := range s.modules {
		if t, ok := m.(Trainable); ok {
			t.Train()
		}
	}
}

// Eval puts all trainable children in evaluation mode.
func (s *Sequential[B]) Eval() {
	for _, m := range s.modules {
		if t, ok := m.(Trainable); ok {
			t.Eval()
		}
	}
}

// StateDict collects every stateful child's tensors, prefixing keys
// with the child's index: "0.weight", "0.bias", "2.weight", ...
func (s *Sequential[B]) StateDict() map[string]*tensor.RawTensor {
	state := make(map[string]*tensor.RawTensor)
	for i, m := range s.modules {
		stateful, ok := m.(Stateful)
		if !ok {
			continue
		}
		for key, t := range stateful.StateDict() {
			state[strconv.Itoa(i)+"."+key] = t
		}
	}
	return state
}

// LoadStateDict routes index-prefixed entries back to the stateful
// children. Errors are wrapped with the failing child's index.
func (s *Sequential[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	perModule := make(map[int]map[string]*tensor.RawTensor)
	for key, t := range state {
		idx, rest, found := strings.Cut(key, ".")
		if !found {
			return fmt.Errorf("malformed state key %q", key)
		}
		i, err := strconv.Atoi(idx)
		if err != nil {
			return fmt.Errorf("malformed state key %q", key)
		}
		if perModule[i] == nil {
			perModule[i] = make(map[string]*tensor.RawTensor)
		}
		perModule[i][rest] = t
	}

	for i, m := range s.modules {
		stateful, ok := m.(Stateful)
		if !ok {
			continue
		}
		sub, ok := perModule[i]
		if !ok {
			return fmt.Errorf("module %d: no entries in state dict", i)
		}
		if err := stateful.LoadStateDict(sub); err != nil {
			return fmt.Errorf("module %d: %w", i, err)
		}
		delete(perModule, i)
	}

	for i := range perModule {
		return fmt.Errorf("state dict has entries for module %d, which is not stateful here", i)
	}
	return nil
}
