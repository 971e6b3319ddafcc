package tensor

// Method wrappers delegating to the bound backend. They exist so
// expressions read naturally: x.MatMul(w).Add(b).

func (t *Tensor[T, B]) wrap(raw *RawTensor) *Tensor[T, B] {
	return &Tensor[T, B]{raw: raw, backend: t.backend}
}

// Add returns t + other (with broadcasting).
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Add(t.raw, other.raw))
}

// Sub returns t - other (with broadcasting).
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Sub(t.raw, other.raw))
}

// Mul returns the elementwise product t * other (with broadcasting).
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Mul(t.raw, other.raw))
}

// Div returns the elementwise quotient t / other (with broadcasting).
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Div(t.raw, other.raw))
}

// MatMul returns the matrix product of two 2-D tensors.
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.MatMul(t.raw, other.raw))
}

// Reshape returns the tensor under a new shape.
func (t *Tensor[T, B]) Reshape(shape Shape) *Tensor[T, B] {
	return t.wrap(t.backend.Reshape(t.raw, shape))
}

// Transpose returns the transposed 2-D tensor.
func (t *Tensor[T, B]) Transpose() *Tensor[T, B] {
	return t.wrap(t.backend.Transpose(t.raw))
}

// T is shorthand for Transpose.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	return t.Transpose()
}
