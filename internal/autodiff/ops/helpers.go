package ops

import "github.com/armelito60/IntroToDLPyTorch/internal/tensor"

// reduceBroadcast sums a gradient back down to the shape of an input
// that was broadcast during the forward pass. Dimensions the input
// lacked, or held with size 1, are summed out.
func reduceBroadcast(grad *tensor.RawTensor, target tensor.Shape) *tensor.RawTensor {
	if grad.Shape().Equal(target) {
		return grad
	}
	out := tensor.MustNewRaw(target, grad.DType())
	switch grad.DType() {
	case tensor.Float32:
		reduceKernel(grad.AsFloat32(), out.AsFloat32(), grad.Shape(), target)
	case tensor.Float64:
		reduceKernel(grad.AsFloat64(), out.AsFloat64(), grad.Shape(), target)
	default:
		panic("reduceBroadcast requires a float dtype, got " + grad.DType().String())
	}
	return out
}

// reduceKernel accumulates src into dst, mapping each src index to the
// dst element it broadcast from.
func reduceKernel[T float32 | float64](src, dst []T, srcShape, dstShape tensor.Shape) {
	dstStrides := expandedStrides(dstShape, srcShape)
	idx := make([]int, len(srcShape))
	for i := range src {
		flat := 0
		for d, v := range idx {
			flat += v * dstStrides[d]
		}
		dst[flat] += src[i]
		stepIndex(idx, srcShape)
	}
}

// expandedStrides gives strides for addressing dst as if it were
// broadcast up to srcShape (stride 0 along broadcast dimensions).
func expandedStrides(dst, src tensor.Shape) []int {
	dstStrides := dst.ComputeStrides()
	strides := make([]int, len(src))
	offset := len(src) - len(dst)
	for i := range src {
		if i < offset {
			continue
		}
		if dst[i-offset] == 1 && src[i] != 1 {
			continue
		}
		strides[i] = dstStrides[i-offset]
	}
	return strides
}

// stepIndex advances a row-major multi-index by one element.
func stepIndex(idx []int, shape tensor.Shape) {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < shape[i] {
			return
		}
		idx[i] = 0
	}
}

// onesLike returns a tensor of the same shape and dtype filled with 1.
func onesLike(t *tensor.RawTensor) *tensor.RawTensor {
	out := tensor.MustNewRaw(t.Shape(), t.DType())
	switch t.DType() {
	case tensor.Float32:
		data := out.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := out.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	default:
		panic("onesLike requires a float dtype, got " + t.DType().String())
	}
	return out
}

// negate returns -t.
func negate(t *tensor.RawTensor) *tensor.RawTensor {
	out := tensor.MustNewRaw(t.Shape(), t.DType())
	switch t.DType() {
	case tensor.Float32:
		src, dst := t.AsFloat32(), out.AsFloat32()
		for i := range src {
			dst[i] = -src[i]
		}
	case tensor.Float64:
		src, dst := t.AsFloat64(), out.AsFloat64()
		for i := range src {
			dst[i] = -src[i]
		}
	default:
		panic("negate requires a float dtype, got " + t.DType().String())
	}
	return out
}

// scalarValue reads a one-element float tensor as float64.
func scalarValue(t *tensor.RawTensor) float64 {
	if t.NumElements() != 1 {
		panic("expected a scalar tensor")
	}
	switch t.DType() {
	case tensor.Float32:
		return float64(t.AsFloat32()[0])
	case tensor.Float64:
		return t.AsFloat64()[0]
	default:
		panic("expected a float scalar, got " + t.DType().String())
	}
}
