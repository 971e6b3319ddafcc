// Copyright 2025 IntroToDLPyTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff is the public API for automatic differentiation.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	loss := criterion.Forward(model.Forward(x), y)
//	grads := backend.Backward(loss.Raw())
//	optimizer.Step(grads)
//	backend.Tape().Clear()
package autodiff

import (
	"github.com/armelito60/IntroToDLPyTorch/internal/autodiff"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// AutodiffBackend decorates a backend with gradient recording.
type AutodiffBackend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// GradientTape records operations for the backward pass.
type GradientTape = autodiff.GradientTape

// New wraps a backend with a fresh gradient tape.
func New[B tensor.Backend](inner B) *AutodiffBackend[B] {
	return autodiff.New(inner)
}
