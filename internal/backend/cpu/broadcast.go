package cpu

import "github.com/armelito60/IntroToDLPyTorch/internal/tensor"

// broadcastStrides computes strides for reading src as if it were
// expanded to out: broadcast dimensions (size 1 against a larger out
// dimension, or missing leading dimensions) get stride 0 so every
// index along them reads the same element.
func broadcastStrides(src, out tensor.Shape) []int {
	srcStrides := src.ComputeStrides()
	strides := make([]int, len(out))
	offset := len(out) - len(src)
	for i := range out {
		if i < offset {
			continue
		}
		if src[i-offset] == 1 && out[i] != 1 {
			continue
		}
		strides[i] = srcStrides[i-offset]
	}
	return strides
}

// flatIndex maps a multi-index to a flat offset under the given strides.
func flatIndex(idx, strides []int) int {
	flat := 0
	for i, v := range idx {
		flat += v * strides[i]
	}
	return flat
}

// advance increments a multi-index in row-major order, wrapping at
// each dimension's bound.
func advance(idx []int, shape tensor.Shape) {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < shape[i] {
			return
		}
		idx[i] = 0
	}
}
