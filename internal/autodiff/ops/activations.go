package ops

import "github.com/armelito60/IntroToDLPyTorch/internal/tensor"

// ReLUOp records y = max(x, 0).
type ReLUOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReLUOp creates a ReLU operation.
func NewReLUOp(input, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{input: input, output: output}
}

func (op *ReLUOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *ReLUOp) Output() *tensor.RawTensor  { return op.output }

// Backward: dy/dx = 1 where x > 0, else 0.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := tensor.MustNewRaw(op.input.Shape(), op.input.DType())
	switch op.input.DType() {
	case tensor.Float32:
		reluGradKernel(op.input.AsFloat32(), outputGrad.AsFloat32(), grad.AsFloat32())
	case tensor.Float64:
		reluGradKernel(op.input.AsFloat64(), outputGrad.AsFloat64(), grad.AsFloat64())
	}
	return []*tensor.RawTensor{grad}
}

func reluGradKernel[T float32 | float64](input, outGrad, grad []T) {
	for i := range input {
		if input[i] > 0 {
			grad[i] = outGrad[i]
		}
	}
}

// SigmoidOp records y = 1 / (1 + exp(-x)).
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSigmoidOp creates a sigmoid operation.
func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{input: input, output: output}
}

func (op *SigmoidOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SigmoidOp) Output() *tensor.RawTensor  { return op.output }

// Backward uses the saved output: dy/dx = y * (1 - y).
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	oneMinus := backend.Sub(onesLike(op.output), op.output)
	derivative := backend.Mul(op.output, oneMinus)
	return []*tensor.RawTensor{backend.Mul(outputGrad, derivative)}
}

// TanhOp records y = tanh(x).
type TanhOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewTanhOp creates a tanh operation.
func NewTanhOp(input, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{input: input, output: output}
}

func (op *TanhOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *TanhOp) Output() *tensor.RawTensor  { return op.output }

// Backward uses the saved output: dy/dx = 1 - y^2.
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	squared := backend.Mul(op.output, op.output)
	derivative := backend.Sub(onesLike(op.output), squared)
	return []*tensor.RawTensor{backend.Mul(outputGrad, derivative)}
}
