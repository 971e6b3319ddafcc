package tensor

// Backend executes tensor operations on RawTensors. Implementations
// panic on shape or dtype violations; those are programmer errors, not
// runtime conditions.
//
// Elementwise arithmetic follows NumPy broadcasting rules and is
// defined for float tensors only. Integer tensors hold data (labels,
// pixels), not operands.
type Backend interface {
	// Elementwise arithmetic with broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul multiplies two 2-D tensors: [m,k] x [k,n] -> [m,n].
	MatMul(a, b *RawTensor) *RawTensor

	// Reshape returns a tensor with the same data under a new shape.
	Reshape(a *RawTensor, shape Shape) *RawTensor

	// Transpose swaps the two dimensions of a 2-D tensor.
	Transpose(a *RawTensor) *RawTensor

	// Name identifies the backend ("cpu", "autodiff(cpu)", ...).
	Name() string
}
