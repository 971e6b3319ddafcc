package nn_test

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armelito60/IntroToDLPyTorch/autodiff"
	"github.com/armelito60/IntroToDLPyTorch/backend/cpu"
	"github.com/armelito60/IntroToDLPyTorch/nn"
	"github.com/armelito60/IntroToDLPyTorch/optim"
	"github.com/armelito60/IntroToDLPyTorch/tensor"
)

type Backend = *autodiff.AutodiffBackend[*cpu.Backend]

// bandedImages builds trivially separable samples: class k lights up
// the k-th quarter of the image.
func bandedImages(t *testing.T, backend Backend, n, size, classes int, rng *rand.Rand) (*tensor.Tensor[float32, Backend], *tensor.Tensor[int32, Backend]) {
	t.Helper()
	pixels := make([]float32, n*size)
	labels := make([]int32, n)
	band := size / classes
	for i := 0; i < n; i++ {
		class := i % classes
		labels[i] = int32(class)
		for j := class * band; j < (class+1)*band; j++ {
			pixels[i*size+j] = 0.8 + rng.Float32()*0.2
		}
	}
	x, err := tensor.FromSlice(pixels, tensor.Shape{n, size}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice(labels, tensor.Shape{n}, backend)
	require.NoError(t, err)
	return x, y
}

// TestTrainingLoop drives the whole public surface the way the lesson
// binaries do: forward, loss, backward, optimizer step, checkpoint.
func TestTrainingLoop(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(42))

	model, err := nn.NewFeedForward(nn.Arch{
		InputSize:   16,
		OutputSize:  4,
		HiddenSizes: []int{12},
	}, backend)
	require.NoError(t, err)

	opt := optim.NewAdam(model.Parameters(), 0.05)
	criterion := nn.NewCrossEntropyLoss[Backend]()
	x, y := bandedImages(t, backend, 32, 16, 4, rng)

	model.Train()
	var first, last float32
	for epoch := 0; epoch < 30; epoch++ {
		backend.Tape().StartRecording()
		loss := criterion.Forward(model.Forward(x), y)
		opt.Step(backend.Backward(loss.Raw()))
		backend.Tape().Clear()
		backend.Tape().StopRecording()

		if epoch == 0 {
			first = loss.Item()
		}
		last = loss.Item()
	}

	assert.Less(t, last, first, "loss did not fall: %v -> %v", first, last)

	model.Eval()
	assert.Equal(t, 1.0, nn.Accuracy(model.Forward(x), y))

	// Resume from a checkpoint and keep the exact same behavior.
	path := filepath.Join(t.TempDir(), "loop.ckpt")
	require.NoError(t, nn.SaveCheckpoint(path, model, opt, 29, 30, float64(last)))

	restored, err := nn.NewFeedForward(model.Arch(), backend)
	require.NoError(t, err)
	restoredOpt := optim.NewAdam(restored.Parameters(), 0.05)
	info, err := nn.LoadCheckpoint(path, restored, restoredOpt)
	require.NoError(t, err)
	assert.Equal(t, 29, info.Epoch)
	assert.Equal(t, "adam", info.OptimizerType)

	restored.Eval()
	assert.Equal(t,
		model.Forward(x).Raw().AsFloat32(),
		restored.Forward(x).Raw().AsFloat32())
}
