// Copyright 2025 IntroToDLPyTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor is the public API for tensors.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	y, _ := tensor.Randn[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)
package tensor

import "github.com/armelito60/IntroToDLPyTorch/internal/tensor"

// DType is the constraint for tensor element types: float32, float64,
// int32, uint8.
type DType = tensor.DType

// DataType is the runtime data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Uint8   DataType = tensor.Uint8
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Backend executes tensor operations.
type Backend = tensor.Backend

// RawTensor is the low-level type-erased tensor.
type RawTensor = tensor.RawTensor

// Tensor is the high-level typed tensor.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// New creates a zero-filled tensor.
func New[T DType, B Backend](shape Shape, backend B) (*Tensor[T, B], error) {
	return tensor.New[T](shape, backend)
}

// FromSlice creates a tensor from a flat slice.
func FromSlice[T DType, B Backend](data []T, shape Shape, backend B) (*Tensor[T, B], error) {
	return tensor.FromSlice(data, shape, backend)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, backend B) (*Tensor[T, B], error) {
	return tensor.Zeros[T](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, backend B) (*Tensor[T, B], error) {
	return tensor.Ones[T](shape, backend)
}

// Full creates a tensor filled with a constant.
func Full[T DType, B Backend](shape Shape, value T, backend B) (*Tensor[T, B], error) {
	return tensor.Full[T](shape, value, backend)
}

// Rand creates a tensor with uniform random values in [0, 1).
func Rand[T DType, B Backend](shape Shape, backend B) (*Tensor[T, B], error) {
	return tensor.Rand[T](shape, backend)
}

// Randn creates a tensor with standard normal random values.
func Randn[T DType, B Backend](shape Shape, backend B) (*Tensor[T, B], error) {
	return tensor.Randn[T](shape, backend)
}

// Arange creates a 1-D tensor with values [0, n).
func Arange[T DType, B Backend](n int, backend B) (*Tensor[T, B], error) {
	return tensor.Arange[T](n, backend)
}

// BroadcastShapes applies NumPy broadcasting rules to two shapes.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
