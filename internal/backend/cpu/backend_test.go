package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

func rawFrom(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func TestAddSameShape(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFrom(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	out := backend.Add(a, b)
	assert.Equal(t, []float32{11, 22, 33, 44}, out.AsFloat32())
}

func TestAddBroadcastRow(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := rawFrom(t, []float32{10, 20, 30}, tensor.Shape{3})

	out := backend.Add(a, bias)
	require.True(t, out.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, out.AsFloat32())
}

func TestMulBroadcastColumn(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	col := rawFrom(t, []float32{10, 100}, tensor.Shape{2, 1})

	out := backend.Mul(a, col)
	assert.Equal(t, []float32{10, 20, 300, 400}, out.AsFloat32())
}

func TestSubDiv(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{8, 6}, tensor.Shape{2})
	b := rawFrom(t, []float32{2, 3}, tensor.Shape{2})

	assert.Equal(t, []float32{6, 3}, backend.Sub(a, b).AsFloat32())
	assert.Equal(t, []float32{4, 2}, backend.Div(a, b).AsFloat32())
}

func TestMatMul(t *testing.T) {
	backend := New()
	// [1 2; 3 4] @ [5 6; 7 8] = [19 22; 43 50]
	a := rawFrom(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFrom(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	out := backend.MatMul(a, b)
	assert.Equal(t, []float32{19, 22, 43, 50}, out.AsFloat32())
}

func TestMatMulRectangular(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := rawFrom(t, []float32{1, 0, 0, 1, 1, 1}, tensor.Shape{3, 2})

	out := backend.MatMul(a, b)
	require.True(t, out.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float32{4, 5, 10, 11}, out.AsFloat32())
}

func TestMatMulShapePanics(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFrom(t, []float32{1, 2, 3}, tensor.Shape{3, 1})

	assert.Panics(t, func() { backend.MatMul(a, b) })
	assert.Panics(t, func() { backend.MatMul(a, rawFrom(t, []float32{1, 2}, tensor.Shape{2})) })
}

func TestTranspose(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := backend.Transpose(a)
	require.True(t, out.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, out.AsFloat32())
}

func TestReshapeSharesData(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	out := backend.Reshape(a, tensor.Shape{4})
	out.AsFloat32()[0] = 99
	assert.Equal(t, float32(99), a.AsFloat32()[0])
}

func TestIncompatibleBroadcastPanics(t *testing.T) {
	backend := New()
	a := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := rawFrom(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	assert.Panics(t, func() { backend.Add(a, b) })
}

func TestIntArithmeticPanics(t *testing.T) {
	backend := New()
	a, err := tensor.NewRaw(tensor.Shape{2}, tensor.Int32)
	require.NoError(t, err)

	assert.Panics(t, func() { backend.Add(a, a) })
}
