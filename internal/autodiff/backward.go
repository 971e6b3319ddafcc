package autodiff

import (
	"fmt"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Backward runs backpropagation from a scalar loss with a seed
// gradient of 1 and returns gradients keyed by raw tensor. The tape is
// left intact; call Tape().Clear() before the next step.
func (a *AutodiffBackend[B]) Backward(loss *tensor.RawTensor) map[*tensor.RawTensor]*tensor.RawTensor {
	if loss.NumElements() != 1 {
		panic(fmt.Sprintf("Backward requires a scalar loss, got shape %v", loss.Shape()))
	}

	seed := tensor.MustNewRaw(loss.Shape(), loss.DType())
	switch loss.DType() {
	case tensor.Float32:
		seed.AsFloat32()[0] = 1
	case tensor.Float64:
		seed.AsFloat64()[0] = 1
	default:
		panic("Backward requires a float loss, got " + loss.DType().String())
	}

	return a.tape.Backward(loss, seed, a.inner)
}
