// Package autodiff provides reverse-mode automatic differentiation as
// a backend decorator. AutodiffBackend wraps any tensor.Backend,
// forwards every operation to it, and records the operation on a
// gradient tape while recording is enabled.
package autodiff

import (
	"math"

	"github.com/armelito60/IntroToDLPyTorch/internal/autodiff/ops"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// AutodiffBackend decorates an inner backend with gradient recording.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New wraps a backend with a fresh gradient tape.
func New[B tensor.Backend](inner B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{inner: inner, tape: NewGradientTape()}
}

// Inner returns the wrapped backend.
func (a *AutodiffBackend[B]) Inner() B {
	return a.inner
}

// Tape returns the gradient tape.
func (a *AutodiffBackend[B]) Tape() *GradientTape {
	return a.tape
}

// Name returns the backend identifier.
func (a *AutodiffBackend[B]) Name() string {
	return "autodiff(" + a.inner.Name() + ")"
}

// Add returns x + y, recording the operation.
func (a *AutodiffBackend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Add(x, y)
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewAddOp(x, y, out))
	}
	return out
}

// Sub returns x - y, recording the operation.
func (a *AutodiffBackend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Sub(x, y)
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewSubOp(x, y, out))
	}
	return out
}

// Mul returns x * y, recording the operation.
func (a *AutodiffBackend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Mul(x, y)
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewMulOp(x, y, out))
	}
	return out
}

// Div returns x / y, recording the operation.
func (a *AutodiffBackend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Div(x, y)
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewDivOp(x, y, out))
	}
	return out
}

// MatMul returns x @ y, recording the operation.
func (a *AutodiffBackend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.MatMul(x, y)
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewMatMulOp(x, y, out))
	}
	return out
}

// Reshape returns x under a new shape, recording the operation.
func (a *AutodiffBackend[B]) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	out := a.inner.Reshape(x, shape)
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewReshapeOp(x, out))
	}
	return out
}

// Transpose returns x^T, recording the operation.
func (a *AutodiffBackend[B]) Transpose(x *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Transpose(x)
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewTransposeOp(x, out))
	}
	return out
}

// ReLU returns max(x, 0), recording the operation.
func (a *AutodiffBackend[B]) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	out := unaryForward(x, func(v float64) float64 { return math.Max(v, 0) })
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewReLUOp(x, out))
	}
	return out
}

// Sigmoid returns 1/(1+exp(-x)), recording the operation.
func (a *AutodiffBackend[B]) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	out := unaryForward(x, func(v float64) float64 { return 1 / (1 + math.Exp(-v)) })
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewSigmoidOp(x, out))
	}
	return out
}

// Tanh returns tanh(x), recording the operation.
func (a *AutodiffBackend[B]) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	out := unaryForward(x, math.Tanh)
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewTanhOp(x, out))
	}
	return out
}

// CrossEntropy returns the mean cross-entropy between logits [N,C] and
// int32 labels [N] as a scalar, recording the fused operation.
func (a *AutodiffBackend[B]) CrossEntropy(logits, labels *tensor.RawTensor) *tensor.RawTensor {
	out := ops.CrossEntropyForward(logits, labels)
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewCrossEntropyOp(logits, labels, out))
	}
	return out
}

// BCEWithLogits returns the mean binary cross-entropy between logits
// and float targets as a scalar, recording the fused operation.
func (a *AutodiffBackend[B]) BCEWithLogits(logits, targets *tensor.RawTensor) *tensor.RawTensor {
	out := ops.BCEWithLogitsForward(logits, targets)
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewBCEWithLogitsOp(logits, targets, out))
	}
	return out
}

// MSE returns the mean squared error between predictions and targets
// as a scalar, recording the operation.
func (a *AutodiffBackend[B]) MSE(pred, targets *tensor.RawTensor) *tensor.RawTensor {
	out := ops.MSEForward(pred, targets)
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewMSEOp(pred, targets, out))
	}
	return out
}

// unaryForward applies an elementwise function in float64 and stores
// the result back in the input's dtype.
func unaryForward(x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	out := tensor.MustNewRaw(x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), out.AsFloat32()
		for i := range src {
			dst[i] = float32(f(float64(src[i])))
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), out.AsFloat64()
		for i := range src {
			dst[i] = f(src[i])
		}
	default:
		panic("activation requires a float dtype, got " + x.DType().String())
	}
	return out
}
