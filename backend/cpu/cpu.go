// Copyright 2025 IntroToDLPyTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu is the public API for the CPU backend.
package cpu

import (
	internalcpu "github.com/armelito60/IntroToDLPyTorch/internal/backend/cpu"
	"github.com/armelito60/IntroToDLPyTorch/tensor"
)

// Backend executes tensor operations on the host CPU.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func New() *Backend {
	return internalcpu.New()
}
