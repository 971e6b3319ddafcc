package ops

import (
	"fmt"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// MSEOp records the mean squared error between predictions and targets
// of the same shape.
type MSEOp struct {
	pred    *tensor.RawTensor
	targets *tensor.RawTensor
	output  *tensor.RawTensor
}

// NewMSEOp creates a mean squared error operation.
func NewMSEOp(pred, targets, output *tensor.RawTensor) *MSEOp {
	return &MSEOp{pred: pred, targets: targets, output: output}
}

func (op *MSEOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.pred, op.targets}
}

func (op *MSEOp) Output() *tensor.RawTensor { return op.output }

// Backward: dL/dpred = 2*(pred - target) / N; targets get the
// opposite gradient.
func (op *MSEOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	n := op.pred.NumElements()
	scale := scalarValue(outputGrad) * 2 / float64(n)

	gradPred := tensor.MustNewRaw(op.pred.Shape(), op.pred.DType())
	switch op.pred.DType() {
	case tensor.Float32:
		mseGradKernel(op.pred.AsFloat32(), op.targets.AsFloat32(), gradPred.AsFloat32(), scale)
	case tensor.Float64:
		mseGradKernel(op.pred.AsFloat64(), op.targets.AsFloat64(), gradPred.AsFloat64(), scale)
	}
	return []*tensor.RawTensor{gradPred, negate(gradPred)}
}

// MSEForward computes mean((pred - target)^2) as a scalar tensor.
func MSEForward(pred, targets *tensor.RawTensor) *tensor.RawTensor {
	if !pred.Shape().Equal(targets.Shape()) || pred.DType() != targets.DType() {
		panic(fmt.Sprintf("mse: pred %s %v and targets %s %v must match",
			pred.DType(), pred.Shape(), targets.DType(), targets.Shape()))
	}

	out := tensor.MustNewRaw(tensor.Shape{1}, pred.DType())
	switch pred.DType() {
	case tensor.Float32:
		out.AsFloat32()[0] = float32(mseForwardKernel(pred.AsFloat32(), targets.AsFloat32()))
	case tensor.Float64:
		out.AsFloat64()[0] = mseForwardKernel(pred.AsFloat64(), targets.AsFloat64())
	default:
		panic("mse requires float tensors, got " + pred.DType().String())
	}
	return out
}

func mseForwardKernel[T float32 | float64](pred, targets []T) float64 {
	var total float64
	for i := range pred {
		d := float64(pred[i]) - float64(targets[i])
		total += d * d
	}
	return total / float64(len(pred))
}

func mseGradKernel[T float32 | float64](pred, targets, grad []T, scale float64) {
	for i := range pred {
		grad[i] = T((float64(pred[i]) - float64(targets[i])) * scale)
	}
}
