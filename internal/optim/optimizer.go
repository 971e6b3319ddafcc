// Package optim implements gradient descent optimizers.
package optim

import (
	"github.com/armelito60/IntroToDLPyTorch/internal/nn"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Optimizer updates parameters from a gradient map produced by the
// tape. Parameters absent from the map are skipped.
type Optimizer interface {
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)
	ZeroGrad()
	LR() float64
}

// gradientFor looks a parameter's gradient up by its raw tensor.
func gradientFor[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	return grads[param.Tensor().Raw()]
}
