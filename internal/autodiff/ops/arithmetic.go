package ops

import "github.com/armelito60/IntroToDLPyTorch/internal/tensor"

// AddOp records c = a + b.
type AddOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

// NewAddOp creates an addition operation.
func NewAddOp(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{a: a, b: b, output: output}
}

func (op *AddOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *AddOp) Output() *tensor.RawTensor  { return op.output }

// Backward passes the gradient through unchanged, reduced back to each
// input's pre-broadcast shape.
func (op *AddOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, op.a.Shape()),
		reduceBroadcast(outputGrad, op.b.Shape()),
	}
}

// SubOp records c = a - b.
type SubOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSubOp creates a subtraction operation.
func NewSubOp(a, b, output *tensor.RawTensor) *SubOp {
	return &SubOp{a: a, b: b, output: output}
}

func (op *SubOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *SubOp) Output() *tensor.RawTensor  { return op.output }

func (op *SubOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, op.a.Shape()),
		reduceBroadcast(negate(outputGrad), op.b.Shape()),
	}
}

// MulOp records c = a * b (elementwise).
type MulOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

// NewMulOp creates an elementwise multiplication operation.
func NewMulOp(a, b, output *tensor.RawTensor) *MulOp {
	return &MulOp{a: a, b: b, output: output}
}

func (op *MulOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *MulOp) Output() *tensor.RawTensor  { return op.output }

// Backward: d(a*b)/da = b, d(a*b)/db = a.
func (op *MulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(backend.Mul(outputGrad, op.b), op.a.Shape()),
		reduceBroadcast(backend.Mul(outputGrad, op.a), op.b.Shape()),
	}
}

// DivOp records c = a / b (elementwise).
type DivOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

// NewDivOp creates an elementwise division operation.
func NewDivOp(a, b, output *tensor.RawTensor) *DivOp {
	return &DivOp{a: a, b: b, output: output}
}

func (op *DivOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *DivOp) Output() *tensor.RawTensor  { return op.output }

// Backward: d(a/b)/da = 1/b, d(a/b)/db = -a/b^2.
func (op *DivOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradA := backend.Div(outputGrad, op.b)
	bSquared := backend.Mul(op.b, op.b)
	gradB := negate(backend.Mul(outputGrad, backend.Div(op.a, bSquared)))
	return []*tensor.RawTensor{
		reduceBroadcast(gradA, op.a.Shape()),
		reduceBroadcast(gradB, op.b.Shape()),
	}
}
