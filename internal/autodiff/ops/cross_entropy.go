package ops

import (
	"fmt"
	"math"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// CrossEntropyOp records the mean cross-entropy between logits [N,C]
// and integer class labels [N]. Softmax and negative log-likelihood
// are fused, which keeps both the forward pass and the gradient
// numerically stable.
type CrossEntropyOp struct {
	logits *tensor.RawTensor
	labels *tensor.RawTensor
	output *tensor.RawTensor
}

// NewCrossEntropyOp creates a cross-entropy operation.
func NewCrossEntropyOp(logits, labels, output *tensor.RawTensor) *CrossEntropyOp {
	return &CrossEntropyOp{logits: logits, labels: labels, output: output}
}

func (op *CrossEntropyOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.logits, op.labels}
}

func (op *CrossEntropyOp) Output() *tensor.RawTensor { return op.output }

// Backward: dL/dlogits = (softmax(logits) - onehot(labels)) / N,
// scaled by the incoming scalar gradient. Labels get no gradient.
func (op *CrossEntropyOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	shape := op.logits.Shape()
	n, c := shape[0], shape[1]
	labels := op.labels.AsInt32()
	scale := scalarValue(outputGrad) / float64(n)

	grad := tensor.MustNewRaw(shape, op.logits.DType())
	switch op.logits.DType() {
	case tensor.Float32:
		ceGradKernel(op.logits.AsFloat32(), labels, grad.AsFloat32(), n, c, scale)
	case tensor.Float64:
		ceGradKernel(op.logits.AsFloat64(), labels, grad.AsFloat64(), n, c, scale)
	}
	return []*tensor.RawTensor{grad, nil}
}

// CrossEntropyForward computes the mean cross-entropy loss as a scalar
// tensor of the logits' dtype.
func CrossEntropyForward(logits, labels *tensor.RawTensor) *tensor.RawTensor {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("cross entropy requires 2-D logits, got %v", shape))
	}
	if labels.DType() != tensor.Int32 || len(labels.Shape()) != 1 || labels.Shape()[0] != shape[0] {
		panic(fmt.Sprintf("cross entropy requires int32 labels of shape [%d], got %s %v",
			shape[0], labels.DType(), labels.Shape()))
	}

	n, c := shape[0], shape[1]
	out := tensor.MustNewRaw(tensor.Shape{1}, logits.DType())
	switch logits.DType() {
	case tensor.Float32:
		out.AsFloat32()[0] = float32(ceForwardKernel(logits.AsFloat32(), labels.AsInt32(), n, c))
	case tensor.Float64:
		out.AsFloat64()[0] = ceForwardKernel(logits.AsFloat64(), labels.AsInt32(), n, c)
	default:
		panic("cross entropy requires float logits, got " + logits.DType().String())
	}
	return out
}

// ceForwardKernel computes mean(logSumExp(row) - row[label]) with the
// max-subtraction trick.
func ceForwardKernel[T float32 | float64](logits []T, labels []int32, n, c int) float64 {
	var total float64
	for i := 0; i < n; i++ {
		row := logits[i*c : (i+1)*c]
		label := int(labels[i])
		if label < 0 || label >= c {
			panic(fmt.Sprintf("label %d out of range for %d classes", label, c))
		}
		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}
		var sumExp float64
		for _, v := range row {
			sumExp += math.Exp(float64(v - maxVal))
		}
		logSumExp := math.Log(sumExp) + float64(maxVal)
		total += logSumExp - float64(row[label])
	}
	return total / float64(n)
}

func ceGradKernel[T float32 | float64](logits []T, labels []int32, grad []T, n, c int, scale float64) {
	for i := 0; i < n; i++ {
		row := logits[i*c : (i+1)*c]
		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}
		var sumExp float64
		for _, v := range row {
			sumExp += math.Exp(float64(v - maxVal))
		}
		for j := 0; j < c; j++ {
			softmax := math.Exp(float64(row[j]-maxVal)) / sumExp
			if j == int(labels[i]) {
				softmax -= 1
			}
			grad[i*c+j] = T(softmax * scale)
		}
	}
}
