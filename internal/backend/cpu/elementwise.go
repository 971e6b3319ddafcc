package cpu

import "github.com/armelito60/IntroToDLPyTorch/internal/tensor"

// binaryKernel applies a named elementwise operation. The fast path
// handles identical shapes with a single flat loop; otherwise both
// inputs are walked through broadcast strides.
func binaryKernel[T float32 | float64](op string, a, b, out []T, aShape, bShape, outShape tensor.Shape) {
	f := binaryFunc[T](op)

	if aShape.Equal(bShape) {
		for i := range out {
			out[i] = f(a[i], b[i])
		}
		return
	}

	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)
	idx := make([]int, len(outShape))
	for i := range out {
		out[i] = f(a[flatIndex(idx, aStrides)], b[flatIndex(idx, bStrides)])
		advance(idx, outShape)
	}
}

func binaryFunc[T float32 | float64](op string) func(x, y T) T {
	switch op {
	case "add":
		return func(x, y T) T { return x + y }
	case "sub":
		return func(x, y T) T { return x - y }
	case "mul":
		return func(x, y T) T { return x * y }
	case "div":
		return func(x, y T) T { return x / y }
	default:
		panic("cpu: unknown elementwise op " + op)
	}
}
