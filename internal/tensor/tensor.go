package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a typed view over a RawTensor bound to a backend.
// T fixes the element type at compile time, B the backend executing
// operations.
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
}

// New creates a zero-filled tensor with the given shape.
func New[T DType, B Backend](shape Shape, backend B) (*Tensor[T, B], error) {
	var zero T
	raw, err := NewRaw(shape, inferDataType(zero))
	if err != nil {
		return nil, err
	}
	return &Tensor[T, B]{raw: raw, backend: backend}, nil
}

// FromSlice creates a tensor from a flat slice of data.
// The element count must match the shape.
func FromSlice[T DType, B Backend](data []T, shape Shape, backend B) (*Tensor[T, B], error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	t, err := New[T](shape, backend)
	if err != nil {
		return nil, err
	}
	copy(t.Data(), data)
	return t, nil
}

// FromRaw wraps an existing RawTensor. The raw tensor's dtype must
// match T; this is checked and panics on mismatch.
func FromRaw[T DType, B Backend](raw *RawTensor, backend B) *Tensor[T, B] {
	var zero T
	if raw.DType() != inferDataType(zero) {
		panic(fmt.Sprintf("dtype mismatch: raw tensor is %s", raw.DType()))
	}
	return &Tensor[T, B]{raw: raw, backend: backend}
}

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() Shape {
	return t.raw.Shape()
}

// DType returns the tensor's runtime data type.
func (t *Tensor[T, B]) DType() DataType {
	return t.raw.DType()
}

// NumElements returns the number of elements.
func (t *Tensor[T, B]) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying RawTensor.
func (t *Tensor[T, B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the backend the tensor is bound to.
func (t *Tensor[T, B]) Backend() B {
	return t.backend
}

// Data returns the elements as a typed slice sharing the tensor's buffer.
func (t *Tensor[T, B]) Data() []T {
	switch any(*new(T)).(type) {
	case float32:
		return any(t.raw.AsFloat32()).([]T)
	case float64:
		return any(t.raw.AsFloat64()).([]T)
	case int32:
		return any(t.raw.AsInt32()).([]T)
	case uint8:
		return any(t.raw.AsUint8()).([]T)
	default:
		panic("unsupported element type")
	}
}

// Item returns the value of a single-element tensor.
func (t *Tensor[T, B]) Item() T {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item called on tensor with %d elements", t.NumElements()))
	}
	return t.Data()[0]
}

// At returns the element at the given indices.
func (t *Tensor[T, B]) At(indices ...int) T {
	return t.Data()[t.flatIndex(indices)]
}

// Set stores a value at the given indices.
func (t *Tensor[T, B]) Set(value T, indices ...int) {
	t.Data()[t.flatIndex(indices)] = value
}

func (t *Tensor[T, B]) flatIndex(indices []int) int {
	shape := t.raw.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("expected %d indices for shape %v, got %d", len(shape), shape, len(indices)))
	}
	strides := t.raw.Strides()
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of range for dimension %d (size %d)", idx, i, shape[i]))
		}
		flat += idx * strides[i]
	}
	return flat
}

// Clone returns a deep copy bound to the same backend.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.raw.Clone(), backend: t.backend}
}

// String renders the tensor for debugging. Large tensors are
// abbreviated to their first elements.
func (t *Tensor[T, B]) String() string {
	const maxShown = 8
	data := t.Data()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor(shape=%v, dtype=%s, data=[", t.Shape(), t.DType())
	for i, v := range data {
		if i == maxShown {
			sb.WriteString(", ...")
			break
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v", v)
	}
	sb.WriteString("])")
	return sb.String()
}
