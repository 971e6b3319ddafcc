package optim

import (
	"fmt"

	"github.com/armelito60/IntroToDLPyTorch/internal/nn"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// SGD is stochastic gradient descent with optional momentum:
//
//	v = momentum*v + grad
//	w = w - lr*v
//
// With momentum 0 it degenerates to the plain update and no velocity
// buffers are kept.
type SGD[B tensor.Backend] struct {
	params   []*nn.Parameter[B]
	lr       float64
	momentum float64
	velocity []*tensor.RawTensor
}

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], lr, momentum float64) *SGD[B] {
	return &SGD[B]{
		params:   params,
		lr:       lr,
		momentum: momentum,
		velocity: make([]*tensor.RawTensor, len(params)),
	}
}

// LR returns the learning rate.
func (s *SGD[B]) LR() float64 { return s.lr }

// Name returns the optimizer identifier for checkpoint headers.
func (s *SGD[B]) Name() string { return "sgd" }

// Config returns the hyperparameters for checkpoint headers.
func (s *SGD[B]) Config() map[string]float64 {
	return map[string]float64{"lr": s.lr, "momentum": s.momentum}
}

// Step applies one update from the gradient map.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for i, param := range s.params {
		grad := gradientFor(param, grads)
		if grad == nil {
			continue
		}
		weights := param.Tensor().Raw().AsFloat32()
		gradData := grad.AsFloat32()

		if s.momentum == 0 {
			for j := range weights {
				weights[j] -= float32(s.lr) * gradData[j]
			}
			continue
		}

		if s.velocity[i] == nil {
			s.velocity[i] = tensor.MustNewRaw(param.Tensor().Shape(), tensor.Float32)
		}
		v := s.velocity[i].AsFloat32()
		for j := range weights {
			v[j] = float32(s.momentum)*v[j] + gradData[j]
			weights[j] -= float32(s.lr) * v[j]
		}
	}
}

// ZeroGrad clears gradients stored on the parameters.
func (s *SGD[B]) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// StateDict returns the velocity buffers keyed "velocity.{i}".
// Parameters whose velocity was never touched are omitted.
func (s *SGD[B]) StateDict() map[string]*tensor.RawTensor {
	state := make(map[string]*tensor.RawTensor)
	for i, v := range s.velocity {
		if v != nil {
			state[fmt.Sprintf("velocity.%d", i)] = v
		}
	}
	return state
}

// LoadStateDict restores velocity buffers, validating shapes against
// the parameters.
func (s *SGD[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	for i, param := range s.params {
		v, ok := state[fmt.Sprintf("velocity.%d", i)]
		if !ok {
			continue
		}
		if !v.Shape().Equal(param.Tensor().Shape()) {
			return fmt.Errorf("velocity.%d shape mismatch: expected %v, got %v",
				i, param.Tensor().Shape(), v.Shape())
		}
		s.velocity[i] = v.Clone()
	}
	return nil
}
