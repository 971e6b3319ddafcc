package tensor

import "math/rand"

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, backend B) (*Tensor[T, B], error) {
	return New[T](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, backend B) (*Tensor[T, B], error) {
	return Full[T](shape, 1, backend)
}

// Full creates a tensor filled with a constant value.
func Full[T DType, B Backend](shape Shape, value T, backend B) (*Tensor[T, B], error) {
	t, err := New[T](shape, backend)
	if err != nil {
		return nil, err
	}
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t, nil
}

// Rand creates a tensor with uniform random values in [0, 1).
// Only float dtypes are supported.
func Rand[T DType, B Backend](shape Shape, backend B) (*Tensor[T, B], error) {
	t, err := New[T](shape, backend)
	if err != nil {
		return nil, err
	}
	fillRandom(t.Raw(), rand.Float64)
	return t, nil
}

// Randn creates a tensor with standard normal random values.
// Only float dtypes are supported.
func Randn[T DType, B Backend](shape Shape, backend B) (*Tensor[T, B], error) {
	t, err := New[T](shape, backend)
	if err != nil {
		return nil, err
	}
	fillRandom(t.Raw(), rand.NormFloat64)
	return t, nil
}

// Arange creates a 1-D tensor with values [0, 1, ..., n-1].
func Arange[T DType, B Backend](n int, backend B) (*Tensor[T, B], error) {
	t, err := New[T](Shape{n}, backend)
	if err != nil {
		return nil, err
	}
	data := t.Data()
	for i := range data {
		data[i] = T(i)
	}
	return t, nil
}

func fillRandom(raw *RawTensor, sample func() float64) {
	switch raw.DType() {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(sample())
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = sample()
		}
	default:
		panic("random initialization requires a float dtype, got " + raw.DType().String())
	}
}
