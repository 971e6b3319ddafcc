package serialization_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armelito60/IntroToDLPyTorch/internal/serialization"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

func sampleState(t *testing.T) map[string]*tensor.RawTensor {
	t.Helper()
	w := tensor.MustNewRaw(tensor.Shape{2, 3}, tensor.Float32)
	copy(w.AsFloat32(), []float32{1, 2, 3, 4, 5, 6})
	b := tensor.MustNewRaw(tensor.Shape{3}, tensor.Float32)
	copy(b.AsFloat32(), []float32{0.1, 0.2, 0.3})
	step := tensor.MustNewRaw(tensor.Shape{1}, tensor.Int32)
	step.AsInt32()[0] = 42
	return map[string]*tensor.RawTensor{"weight": w, "bias": b, "step": step}
}

func writeSample(t *testing.T) (string, map[string]*tensor.RawTensor) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.ckpt")
	state := sampleState(t)
	arch := serialization.Arch{InputSize: 3, OutputSize: 2, HiddenSizes: []int{4}}
	header := serialization.Header{
		Arch:       &arch,
		Checkpoint: &serialization.CheckpointInfo{Epoch: 3, Step: 42, Loss: 0.125},
	}
	require.NoError(t, serialization.Save(path, state, header))
	return path, state
}

func TestSaveOpenRoundTrip(t *testing.T) {
	path, state := writeSample(t)

	f, err := serialization.Open(path)
	require.NoError(t, err)

	require.NotNil(t, f.Header.Arch)
	assert.Equal(t, 3, f.Header.Arch.InputSize)
	assert.Equal(t, []int{4}, f.Header.Arch.HiddenSizes)
	require.NotNil(t, f.Header.Checkpoint)
	assert.Equal(t, 3, f.Header.Checkpoint.Epoch)
	assert.InDelta(t, 0.125, f.Header.Checkpoint.Loss, 1e-9)

	loaded, err := f.StateDict()
	require.NoError(t, err)
	require.Len(t, loaded, len(state))
	for name, want := range state {
		got := loaded[name]
		require.NotNil(t, got, "missing tensor %q", name)
		assert.True(t, got.Shape().Equal(want.Shape()), "tensor %q shape", name)
		assert.Equal(t, want.DType(), got.DType(), "tensor %q dtype", name)
		assert.Equal(t, want.Data(), got.Data(), "tensor %q payload", name)
	}
}

func TestTensorNamesSorted(t *testing.T) {
	path, _ := writeSample(t)
	f, err := serialization.Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"bias", "step", "weight"}, f.TensorNames())
}

func TestTensorOffsetsAligned(t *testing.T) {
	path, _ := writeSample(t)
	f, err := serialization.Open(path)
	require.NoError(t, err)
	for _, meta := range f.Header.Tensors {
		assert.Zerof(t, meta.Offset%64, "tensor %q at offset %d", meta.Name, meta.Offset)
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	path, _ := writeSample(t)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	copy(raw[:4], "NOPE")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = serialization.Open(path)
	assert.True(t, errors.Is(err, serialization.ErrInvalidMagic))
}

func TestOpenRejectsUnsupportedVersion(t *testing.T) {
	path, _ := writeSample(t)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[4] = 99
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = serialization.Open(path)
	assert.True(t, errors.Is(err, serialization.ErrUnsupportedVersion))
}

func TestOpenDetectsCorruptedData(t *testing.T) {
	path, _ := writeSample(t)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = serialization.Open(path)
	assert.True(t, errors.Is(err, serialization.ErrChecksumMismatch))
}

func TestOpenRejectsTruncatedFile(t *testing.T) {
	path, _ := writeSample(t)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw[:32], 0o644))

	_, err = serialization.Open(path)
	assert.True(t, errors.Is(err, serialization.ErrTruncated))
}

func TestTensorNotFound(t *testing.T) {
	path, _ := writeSample(t)
	f, err := serialization.Open(path)
	require.NoError(t, err)

	_, err = f.Tensor("no-such-tensor")
	assert.True(t, errors.Is(err, serialization.ErrTensorNotFound))
}

func TestSaveLeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ckpt")
	require.NoError(t, serialization.Save(path, sampleState(t), serialization.Header{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.ckpt", entries[0].Name())
}
