package ops

import (
	"fmt"
	"math"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// BCEWithLogitsOp records the mean binary cross-entropy between raw
// logits and float targets in {0, 1} of the same shape. The sigmoid is
// fused into the loss so the forward pass never overflows.
type BCEWithLogitsOp struct {
	logits  *tensor.RawTensor
	targets *tensor.RawTensor
	output  *tensor.RawTensor
}

// NewBCEWithLogitsOp creates a binary cross-entropy operation.
func NewBCEWithLogitsOp(logits, targets, output *tensor.RawTensor) *BCEWithLogitsOp {
	return &BCEWithLogitsOp{logits: logits, targets: targets, output: output}
}

func (op *BCEWithLogitsOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.logits, op.targets}
}

func (op *BCEWithLogitsOp) Output() *tensor.RawTensor { return op.output }

// Backward: dL/dz = (sigmoid(z) - y) / N, scaled by the incoming
// scalar gradient. Targets get no gradient.
func (op *BCEWithLogitsOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	n := op.logits.NumElements()
	scale := scalarValue(outputGrad) / float64(n)

	grad := tensor.MustNewRaw(op.logits.Shape(), op.logits.DType())
	switch op.logits.DType() {
	case tensor.Float32:
		bceGradKernel(op.logits.AsFloat32(), op.targets.AsFloat32(), grad.AsFloat32(), scale)
	case tensor.Float64:
		bceGradKernel(op.logits.AsFloat64(), op.targets.AsFloat64(), grad.AsFloat64(), scale)
	}
	return []*tensor.RawTensor{grad, nil}
}

// BCEWithLogitsForward computes the mean stabilized binary
// cross-entropy: max(z,0) - z*y + log(1 + exp(-|z|)).
func BCEWithLogitsForward(logits, targets *tensor.RawTensor) *tensor.RawTensor {
	if !logits.Shape().Equal(targets.Shape()) || logits.DType() != targets.DType() {
		panic(fmt.Sprintf("bce: logits %s %v and targets %s %v must match",
			logits.DType(), logits.Shape(), targets.DType(), targets.Shape()))
	}

	out := tensor.MustNewRaw(tensor.Shape{1}, logits.DType())
	switch logits.DType() {
	case tensor.Float32:
		out.AsFloat32()[0] = float32(bceForwardKernel(logits.AsFloat32(), targets.AsFloat32()))
	case tensor.Float64:
		out.AsFloat64()[0] = bceForwardKernel(logits.AsFloat64(), targets.AsFloat64())
	default:
		panic("bce requires float tensors, got " + logits.DType().String())
	}
	return out
}

func bceForwardKernel[T float32 | float64](logits, targets []T) float64 {
	var total float64
	for i := range logits {
		z, y := float64(logits[i]), float64(targets[i])
		total += math.Max(z, 0) - z*y + math.Log1p(math.Exp(-math.Abs(z)))
	}
	return total / float64(len(logits))
}

func bceGradKernel[T float32 | float64](logits, targets, grad []T, scale float64) {
	for i := range logits {
		sig := 1 / (1 + math.Exp(-float64(logits[i])))
		grad[i] = T((sig - float64(targets[i])) * scale)
	}
}
