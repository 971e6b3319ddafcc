// Copyright 2025 IntroToDLPyTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim is the public API for optimizers.
package optim

import (
	"github.com/armelito60/IntroToDLPyTorch/internal/nn"
	"github.com/armelito60/IntroToDLPyTorch/internal/optim"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Optimizer updates parameters from tape gradients.
type Optimizer = optim.Optimizer

// SGD is stochastic gradient descent with optional momentum.
type SGD[B tensor.Backend] = optim.SGD[B]

// NewSGD creates an SGD optimizer.
//
// Example:
//
//	opt := optim.NewSGD(model.Parameters(), 0.01, 0.9)
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], lr, momentum float64) *SGD[B] {
	return optim.NewSGD(params, lr, momentum)
}

// Adam is the Adam optimizer.
type Adam[B tensor.Backend] = optim.Adam[B]

// NewAdam creates an Adam optimizer with standard defaults.
func NewAdam[B tensor.Backend](params []*nn.Parameter[B], lr float64) *Adam[B] {
	return optim.NewAdam(params, lr)
}

// NewAdamWith creates an Adam optimizer with explicit hyperparameters.
func NewAdamWith[B tensor.Backend](params []*nn.Parameter[B], lr, beta1, beta2, eps float64) *Adam[B] {
	return optim.NewAdamWith(params, lr, beta1, beta2, eps)
}
