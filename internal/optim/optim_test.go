package optim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armelito60/IntroToDLPyTorch/internal/backend/cpu"
	"github.com/armelito60/IntroToDLPyTorch/internal/nn"
	"github.com/armelito60/IntroToDLPyTorch/internal/optim"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

type Backend = *cpu.CPUBackend

func newParam(t *testing.T, name string, data []float32) *nn.Parameter[Backend] {
	t.Helper()
	tens, err := tensor.FromSlice(data, tensor.Shape{len(data)}, cpu.New())
	require.NoError(t, err)
	return nn.NewParameter(name, tens)
}

func gradFor(t *testing.T, param *nn.Parameter[Backend], data []float32) map[*tensor.RawTensor]*tensor.RawTensor {
	t.Helper()
	g := tensor.MustNewRaw(tensor.Shape{len(data)}, tensor.Float32)
	copy(g.AsFloat32(), data)
	return map[*tensor.RawTensor]*tensor.RawTensor{param.Tensor().Raw(): g}
}

func TestSGDPlainUpdate(t *testing.T) {
	p := newParam(t, "w", []float32{1, 2, 3})
	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, 0.1, 0)

	opt.Step(gradFor(t, p, []float32{1, 1, 1}))
	assert.InDelta(t, 0.9, float64(p.Tensor().Raw().AsFloat32()[0]), 1e-6)
	assert.InDelta(t, 1.9, float64(p.Tensor().Raw().AsFloat32()[1]), 1e-6)
	assert.InDelta(t, 2.9, float64(p.Tensor().Raw().AsFloat32()[2]), 1e-6)
}

func TestSGDMomentumAccumulates(t *testing.T) {
	p := newParam(t, "w", []float32{0})
	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, 1.0, 0.5)

	// Step 1: v = 1, w = -1. Step 2: v = 0.5 + 1 = 1.5, w = -2.5.
	opt.Step(gradFor(t, p, []float32{1}))
	assert.InDelta(t, -1.0, float64(p.Tensor().Raw().AsFloat32()[0]), 1e-6)
	opt.Step(gradFor(t, p, []float32{1}))
	assert.InDelta(t, -2.5, float64(p.Tensor().Raw().AsFloat32()[0]), 1e-6)
}

func TestSGDSkipsParamsWithoutGradient(t *testing.T) {
	p := newParam(t, "w", []float32{5})
	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, 0.1, 0)

	opt.Step(map[*tensor.RawTensor]*tensor.RawTensor{})
	assert.Equal(t, float32(5), p.Tensor().Raw().AsFloat32()[0])
}

func TestSGDStateDictRoundTrip(t *testing.T) {
	p := newParam(t, "w", []float32{0, 0})
	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, 0.1, 0.9)
	opt.Step(gradFor(t, p, []float32{1, 2}))

	state := opt.StateDict()
	require.Contains(t, state, "velocity.0")

	q := newParam(t, "w", []float32{0, 0})
	restored := optim.NewSGD([]*nn.Parameter[Backend]{q}, 0.1, 0.9)
	require.NoError(t, restored.LoadStateDict(state))

	// Same gradients after restore must produce the same update.
	opt.Step(gradFor(t, p, []float32{1, 2}))
	restored.Step(gradFor(t, q, []float32{1, 2}))
	assert.Equal(t, p.Tensor().Raw().AsFloat32(), q.Tensor().Raw().AsFloat32())
}

func TestSGDLoadStateDictShapeMismatch(t *testing.T) {
	p := newParam(t, "w", []float32{0, 0})
	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, 0.1, 0.9)

	bad := tensor.MustNewRaw(tensor.Shape{3}, tensor.Float32)
	err := opt.LoadStateDict(map[string]*tensor.RawTensor{"velocity.0": bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shape mismatch")
}

func TestAdamFirstStepMagnitude(t *testing.T) {
	// With bias correction, the first Adam step moves each weight by
	// roughly lr regardless of gradient scale.
	p := newParam(t, "w", []float32{0, 0})
	opt := optim.NewAdam([]*nn.Parameter[Backend]{p}, 0.01)

	opt.Step(gradFor(t, p, []float32{100, 0.001}))
	w := p.Tensor().Raw().AsFloat32()
	assert.InDelta(t, -0.01, float64(w[0]), 1e-4)
	assert.InDelta(t, -0.01, float64(w[1]), 1e-3)
}

func TestAdamConvergesOnQuadratic(t *testing.T) {
	// Minimize f(w) = w^2 from w = 1.
	p := newParam(t, "w", []float32{1})
	opt := optim.NewAdam([]*nn.Parameter[Backend]{p}, 0.1)

	for i := 0; i < 200; i++ {
		w := p.Tensor().Raw().AsFloat32()[0]
		opt.Step(gradFor(t, p, []float32{2 * w}))
	}
	assert.Less(t, math.Abs(float64(p.Tensor().Raw().AsFloat32()[0])), 0.05)
}

func TestAdamStateDictRoundTrip(t *testing.T) {
	p := newParam(t, "w", []float32{0})
	opt := optim.NewAdam([]*nn.Parameter[Backend]{p}, 0.01)
	opt.Step(gradFor(t, p, []float32{1}))
	opt.Step(gradFor(t, p, []float32{1}))

	state := opt.StateDict()
	require.Contains(t, state, "m.0")
	require.Contains(t, state, "v.0")
	require.Contains(t, state, "step")

	q := newParam(t, "w", p.Tensor().Raw().AsFloat32())
	restored := optim.NewAdam([]*nn.Parameter[Backend]{q}, 0.01)
	require.NoError(t, restored.LoadStateDict(state))

	opt.Step(gradFor(t, p, []float32{1}))
	restored.Step(gradFor(t, q, []float32{1}))
	assert.InDelta(t,
		float64(p.Tensor().Raw().AsFloat32()[0]),
		float64(q.Tensor().Raw().AsFloat32()[0]), 1e-6)
}

func TestConfigReportsHyperparameters(t *testing.T) {
	p := newParam(t, "w", []float32{0})
	sgd := optim.NewSGD([]*nn.Parameter[Backend]{p}, 0.1, 0.9)
	assert.Equal(t, 0.1, sgd.Config()["lr"])
	assert.Equal(t, 0.9, sgd.Config()["momentum"])
	assert.Equal(t, "sgd", sgd.Name())

	adam := optim.NewAdam([]*nn.Parameter[Backend]{p}, 0.001)
	assert.Equal(t, 0.001, adam.Config()["lr"])
	assert.Equal(t, "adam", adam.Name())
}
