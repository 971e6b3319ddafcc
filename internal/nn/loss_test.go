package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armelito60/IntroToDLPyTorch/internal/nn"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

func TestCrossEntropyUniformLogits(t *testing.T) {
	backend := newBackend()
	logits, err := tensor.FromSlice([]float32{0, 0, 0, 0, 0, 0, 0, 0}, tensor.Shape{2, 4}, backend)
	require.NoError(t, err)
	labels, err := tensor.FromSlice([]int32{1, 3}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	loss := nn.NewCrossEntropyLoss[Backend]().Forward(logits, labels)
	assert.InDelta(t, math.Log(4), float64(loss.Item()), 1e-5)
}

func TestCrossEntropyFavorsCorrectClass(t *testing.T) {
	backend := newBackend()
	good, err := tensor.FromSlice([]float32{10, 0, 0}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)
	bad, err := tensor.FromSlice([]float32{0, 10, 0}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)
	labels, err := tensor.FromSlice([]int32{0}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	criterion := nn.NewCrossEntropyLoss[Backend]()
	lossGood := criterion.Forward(good, labels).Item()
	lossBad := criterion.Forward(bad, labels).Item()
	assert.Less(t, float64(lossGood), float64(lossBad))
}

func TestBCEWithLogitsAtZero(t *testing.T) {
	backend := newBackend()
	logits, err := tensor.FromSlice([]float32{0, 0}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	targets, err := tensor.FromSlice([]float32{1, 0}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	loss := nn.NewBCEWithLogitsLoss[Backend]().Forward(logits, targets)
	assert.InDelta(t, math.Log(2), float64(loss.Item()), 1e-5)
}

func TestBCEWithLogitsExtremeLogits(t *testing.T) {
	// Large logits must not overflow into NaN or Inf.
	backend := newBackend()
	logits, err := tensor.FromSlice([]float32{100, -100}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	targets, err := tensor.FromSlice([]float32{1, 0}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	loss := float64(nn.NewBCEWithLogitsLoss[Backend]().Forward(logits, targets).Item())
	assert.False(t, math.IsNaN(loss))
	assert.InDelta(t, 0.0, loss, 1e-5)
}

func TestMSEKnownValues(t *testing.T) {
	backend := newBackend()
	pred, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)
	targets, err := tensor.FromSlice([]float32{1, 1, 1}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	loss := nn.NewMSELoss[Backend]().Forward(pred, targets)
	assert.InDelta(t, (0.0+1.0+4.0)/3.0, float64(loss.Item()), 1e-5)
}

func TestAccuracy(t *testing.T) {
	backend := newBackend()
	logits, err := tensor.FromSlice([]float32{
		5, 1, 0,
		0, 3, 1,
		2, 0, 1,
		0, 0, 9,
	}, tensor.Shape{4, 3}, backend)
	require.NoError(t, err)
	labels, err := tensor.FromSlice([]int32{0, 1, 1, 2}, tensor.Shape{4}, backend)
	require.NoError(t, err)

	assert.InDelta(t, 0.75, nn.Accuracy(logits, labels), 1e-9)
}

func TestSoftmaxRowsSumToOne(t *testing.T) {
	backend := newBackend()
	logits, err := tensor.FromSlice([]float32{1, 2, 3, -1, 0, 1000}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)

	probs := nn.Softmax(logits).Raw().AsFloat32()
	for row := 0; row < 2; row++ {
		var sum float64
		for col := 0; col < 3; col++ {
			p := probs[row*3+col]
			sum += float64(p)
			assert.False(t, math.IsNaN(float64(p)))
		}
		assert.InDelta(t, 1.0, sum, 1e-5)
	}
}
