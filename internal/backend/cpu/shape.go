package cpu

import (
	"fmt"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Reshape returns a view of a under a new shape. The data is shared,
// not copied.
func (c *CPUBackend) Reshape(a *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	out, err := a.WithShape(shape)
	if err != nil {
		panic(fmt.Sprintf("cpu: reshape: %v", err))
	}
	return out
}

// Transpose swaps the two dimensions of a 2-D tensor, copying the data
// into the new layout.
func (c *CPUBackend) Transpose(a *tensor.RawTensor) *tensor.RawTensor {
	shape := a.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("cpu: transpose requires a 2-D tensor, got %v", shape))
	}
	rows, cols := shape[0], shape[1]
	out := tensor.MustNewRaw(tensor.Shape{cols, rows}, a.DType())

	switch a.DType() {
	case tensor.Float32:
		transposeKernel(a.AsFloat32(), out.AsFloat32(), rows, cols)
	case tensor.Float64:
		transposeKernel(a.AsFloat64(), out.AsFloat64(), rows, cols)
	case tensor.Int32:
		transposeKernel(a.AsInt32(), out.AsInt32(), rows, cols)
	case tensor.Uint8:
		transposeKernel(a.AsUint8(), out.AsUint8(), rows, cols)
	}
	return out
}

func transposeKernel[T tensor.DType](src, dst []T, rows, cols int) {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst[j*rows+i] = src[i*cols+j]
		}
	}
}
