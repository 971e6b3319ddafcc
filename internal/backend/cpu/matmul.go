package cpu

import (
	"fmt"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// MatMul multiplies two 2-D tensors: [m,k] x [k,n] -> [m,n].
func (c *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("cpu: matmul requires 2-D tensors, got %v x %v", aShape, bShape))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("cpu: matmul inner dimension mismatch: %v x %v", aShape, bShape))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("cpu: matmul dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}

	m, k, n := aShape[0], aShape[1], bShape[1]
	out := tensor.MustNewRaw(tensor.Shape{m, n}, a.DType())

	switch a.DType() {
	case tensor.Float32:
		matmulKernel(a.AsFloat32(), b.AsFloat32(), out.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulKernel(a.AsFloat64(), b.AsFloat64(), out.AsFloat64(), m, k, n)
	default:
		panic(fmt.Sprintf("cpu: matmul not supported for dtype %s", a.DType()))
	}
	return out
}

// matmulKernel is a straightforward triple loop, ordered i-k-j so the
// inner loop streams both b and out rows.
func matmulKernel[T float32 | float64](a, b, out []T, m, k, n int) {
	for i := 0; i < m; i++ {
		for p := 0; p < k; p++ {
			av := a[i*k+p]
			if av == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				out[i*n+j] += av * b[p*n+j]
			}
		}
	}
}
