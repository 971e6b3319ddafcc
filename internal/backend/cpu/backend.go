// Package cpu implements the tensor backend on plain Go slices.
package cpu

import (
	"fmt"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// CPUBackend executes tensor operations on the host CPU. It is
// stateless; a single instance can be shared freely.
type CPUBackend struct{}

// New creates a CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend identifier.
func (c *CPUBackend) Name() string {
	return "cpu"
}

// Add returns a + b with broadcasting.
func (c *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("add", a, b)
}

// Sub returns a - b with broadcasting.
func (c *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("sub", a, b)
}

// Mul returns the elementwise product a * b with broadcasting.
func (c *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("mul", a, b)
}

// Div returns the elementwise quotient a / b with broadcasting.
func (c *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("div", a, b)
}

func (c *CPUBackend) binary(op string, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("cpu: %s dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("cpu: %s: %v", op, err))
	}
	out := tensor.MustNewRaw(outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		binaryKernel(op, a.AsFloat32(), b.AsFloat32(), out.AsFloat32(), a.Shape(), b.Shape(), outShape)
	case tensor.Float64:
		binaryKernel(op, a.AsFloat64(), b.AsFloat64(), out.AsFloat64(), a.Shape(), b.Shape(), outShape)
	default:
		panic(fmt.Sprintf("cpu: %s not supported for dtype %s", op, a.DType()))
	}
	return out
}
