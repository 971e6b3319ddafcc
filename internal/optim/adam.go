package optim

import (
	"fmt"
	"math"

	"github.com/armelito60/IntroToDLPyTorch/internal/nn"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Adam keeps exponential moving averages of gradients (m) and squared
// gradients (v) per parameter and applies bias-corrected updates:
//
//	m = beta1*m + (1-beta1)*grad
//	v = beta2*v + (1-beta2)*grad^2
//	w = w - lr * m/(1-beta1^t) / (sqrt(v/(1-beta2^t)) + eps)
type Adam[B tensor.Backend] struct {
	params []*nn.Parameter[B]
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64

	step int
	m    []*tensor.RawTensor
	v    []*tensor.RawTensor
}

// NewAdam creates an Adam optimizer with the standard defaults
// (beta1 0.9, beta2 0.999, eps 1e-8).
func NewAdam[B tensor.Backend](params []*nn.Parameter[B], lr float64) *Adam[B] {
	return NewAdamWith(params, lr, 0.9, 0.999, 1e-8)
}

// NewAdamWith creates an Adam optimizer with explicit hyperparameters.
func NewAdamWith[B tensor.Backend](params []*nn.Parameter[B], lr, beta1, beta2, eps float64) *Adam[B] {
	return &Adam[B]{
		params: params,
		lr:     lr,
		beta1:  beta1,
		beta2:  beta2,
		eps:    eps,
		m:      make([]*tensor.RawTensor, len(params)),
		v:      make([]*tensor.RawTensor, len(params)),
	}
}

// LR returns the learning rate.
func (a *Adam[B]) LR() float64 { return a.lr }

// Name returns the optimizer identifier for checkpoint headers.
func (a *Adam[B]) Name() string { return "adam" }

// Config returns the hyperparameters for checkpoint headers.
func (a *Adam[B]) Config() map[string]float64 {
	return map[string]float64{"lr": a.lr, "beta1": a.beta1, "beta2": a.beta2, "eps": a.eps}
}

// Step applies one update from the gradient map.
func (a *Adam[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	a.step++
	correction1 := 1 - math.Pow(a.beta1, float64(a.step))
	correction2 := 1 - math.Pow(a.beta2, float64(a.step))

	for i, param := range a.params {
		grad := gradientFor(param, grads)
		if grad == nil {
			continue
		}
		if a.m[i] == nil {
			a.m[i] = tensor.MustNewRaw(param.Tensor().Shape(), tensor.Float32)
			a.v[i] = tensor.MustNewRaw(param.Tensor().Shape(), tensor.Float32)
		}

		weights := param.Tensor().Raw().AsFloat32()
		gradData := grad.AsFloat32()
		m, v := a.m[i].AsFloat32(), a.v[i].AsFloat32()

		for j := range weights {
			g := float64(gradData[j])
			mj := a.beta1*float64(m[j]) + (1-a.beta1)*g
			vj := a.beta2*float64(v[j]) + (1-a.beta2)*g*g
			m[j], v[j] = float32(mj), float32(vj)

			mHat := mj / correction1
			vHat := vj / correction2
			weights[j] -= float32(a.lr * mHat / (math.Sqrt(vHat) + a.eps))
		}
	}
}

// ZeroGrad clears gradients stored on the parameters.
func (a *Adam[B]) ZeroGrad() {
	for _, param := range a.params {
		param.ZeroGrad()
	}
}

// StateDict returns moment buffers keyed "m.{i}"/"v.{i}" plus the step
// counter as a one-element tensor, so resumed training keeps its bias
// correction schedule.
func (a *Adam[B]) StateDict() map[string]*tensor.RawTensor {
	state := make(map[string]*tensor.RawTensor)
	for i := range a.params {
		if a.m[i] != nil {
			state[fmt.Sprintf("m.%d", i)] = a.m[i]
			state[fmt.Sprintf("v.%d", i)] = a.v[i]
		}
	}
	step := tensor.MustNewRaw(tensor.Shape{1}, tensor.Int32)
	step.AsInt32()[0] = int32(a.step)
	state["step"] = step
	return state
}

// LoadStateDict restores moment buffers and the step counter,
// validating shapes against the parameters.
func (a *Adam[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	if step, ok := state["step"]; ok {
		if step.DType() != tensor.Int32 || step.NumElements() != 1 {
			return fmt.Errorf("step must be a single int32, got %s %v", step.DType(), step.Shape())
		}
		a.step = int(step.AsInt32()[0])
	}
	for i, param := range a.params {
		m, okM := state[fmt.Sprintf("m.%d", i)]
		v, okV := state[fmt.Sprintf("v.%d", i)]
		if !okM && !okV {
			continue
		}
		if !okM || !okV {
			return fmt.Errorf("moment buffers for parameter %d are incomplete", i)
		}
		if !m.Shape().Equal(param.Tensor().Shape()) {
			return fmt.Errorf("m.%d shape mismatch: expected %v, got %v", i, param.Tensor().Shape(), m.Shape())
		}
		if !v.Shape().Equal(param.Tensor().Shape()) {
			return fmt.Errorf("v.%d shape mismatch: expected %v, got %v", i, param.Tensor().Shape(), v.Shape())
		}
		a.m[i], a.v[i] = m.Clone(), v.Clone()
	}
	return nil
}
