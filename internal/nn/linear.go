package nn

import (
	"fmt"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Linear is a fully connected layer: y = x @ W^T + b.
// The weight has shape [outFeatures, inFeatures], the bias [outFeatures].
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B]
	bias        *Parameter[B]
}

// NewLinear creates a linear layer with Xavier-initialized weights and
// a zero bias.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) (*Linear[B], error) {
	if inFeatures <= 0 || outFeatures <= 0 {
		return nil, fmt.Errorf("linear: feature counts must be positive, got %d and %d", inFeatures, outFeatures)
	}

	weight, err := tensor.New[float32](tensor.Shape{outFeatures, inFeatures}, backend)
	if err != nil {
		return nil, err
	}
	XavierUniform(weight, inFeatures, outFeatures)

	bias, err := tensor.New[float32](tensor.Shape{outFeatures}, backend)
	if err != nil {
		return nil, err
	}

	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", weight),
		bias:        NewParameter("bias", bias),
	}, nil
}

// InFeatures returns the input width.
func (l *Linear[B]) InFeatures() int { return l.inFeatures }

// OutFeatures returns the output width.
func (l *Linear[B]) OutFeatures() int { return l.outFeatures }

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] { return l.weight }

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] { return l.bias }

// Forward computes x @ W^T + b for a batch x of shape [N, inFeatures].
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("linear: expected 2-D input, got shape %v", shape))
	}
	if shape[1] != l.inFeatures {
		panic(fmt.Sprintf("linear: expected %d input features, got %d", l.inFeatures, shape[1]))
	}
	return input.MatMul(l.weight.Tensor().T()).Add(l.bias.Tensor())
}

// Parameters returns the weight and bias.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

// StateDict returns the layer's tensors under "weight" and "bias".
func (l *Linear[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{
		"weight": l.weight.Tensor().Raw(),
		"bias":   l.bias.Tensor().Raw(),
	}
}

// LoadStateDict copies "weight" and "bias" into the layer after
// validating shapes and dtypes.
func (l *Linear[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	for _, entry := range []struct {
		key   string
		param *Parameter[B]
	}{
		{"weight", l.weight},
		{"bias", l.bias},
	} {
		src, ok := state[entry.key]
		if !ok {
			return fmt.Errorf("missing %q in state dict", entry.key)
		}
		dst := entry.param.Tensor().Raw()
		if !src.Shape().Equal(dst.Shape()) {
			return fmt.Errorf("%s shape mismatch: expected %v, got %v", entry.key, dst.Shape(), src.Shape())
		}
		if src.DType() != dst.DType() {
			return fmt.Errorf("%s dtype mismatch: expected %s, got %s", entry.key, dst.DType(), src.DType())
		}
		copy(dst.Data(), src.Data())
	}
	return nil
}
