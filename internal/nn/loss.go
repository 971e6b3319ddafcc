package nn

import (
	"github.com/armelito60/IntroToDLPyTorch/internal/autodiff/ops"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Loss backends. Like activations, losses are optional backend
// capabilities. When the backend supports the fused op the loss is
// recorded on its tape; otherwise the value is computed directly and
// no gradient flows (useful for plain evaluation on the raw CPU
// backend).

// CrossEntropyBackend is implemented by backends with a fused
// softmax + negative log-likelihood.
type CrossEntropyBackend interface {
	CrossEntropy(logits, labels *tensor.RawTensor) *tensor.RawTensor
}

// BCEBackend is implemented by backends with a fused
// sigmoid + binary cross-entropy.
type BCEBackend interface {
	BCEWithLogits(logits, targets *tensor.RawTensor) *tensor.RawTensor
}

// MSEBackend is implemented by backends with a mean squared error op.
type MSEBackend interface {
	MSE(pred, targets *tensor.RawTensor) *tensor.RawTensor
}

// CrossEntropyLoss computes the mean cross-entropy between logits
// [N,C] and int32 class labels [N].
type CrossEntropyLoss[B tensor.Backend] struct{}

// NewCrossEntropyLoss creates a cross-entropy loss.
func NewCrossEntropyLoss[B tensor.Backend]() *CrossEntropyLoss[B] {
	return &CrossEntropyLoss[B]{}
}

// Forward returns the loss as a scalar tensor.
func (l *CrossEntropyLoss[B]) Forward(logits *tensor.Tensor[float32, B], labels *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	backend := logits.Backend()
	if ceb, ok := any(backend).(CrossEntropyBackend); ok {
		return tensor.FromRaw[float32](ceb.CrossEntropy(logits.Raw(), labels.Raw()), backend)
	}
	return tensor.FromRaw[float32](ops.CrossEntropyForward(logits.Raw(), labels.Raw()), backend)
}

// BCEWithLogitsLoss computes the mean binary cross-entropy between raw
// logits and float targets in {0, 1}.
type BCEWithLogitsLoss[B tensor.Backend] struct{}

// NewBCEWithLogitsLoss creates a binary cross-entropy loss.
func NewBCEWithLogitsLoss[B tensor.Backend]() *BCEWithLogitsLoss[B] {
	return &BCEWithLogitsLoss[B]{}
}

// Forward returns the loss as a scalar tensor.
func (l *BCEWithLogitsLoss[B]) Forward(logits, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := logits.Backend()
	if bb, ok := any(backend).(BCEBackend); ok {
		return tensor.FromRaw[float32](bb.BCEWithLogits(logits.Raw(), targets.Raw()), backend)
	}
	return tensor.FromRaw[float32](ops.BCEWithLogitsForward(logits.Raw(), targets.Raw()), backend)
}

// MSELoss computes the mean squared error.
type MSELoss[B tensor.Backend] struct{}

// NewMSELoss creates a mean squared error loss.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return &MSELoss[B]{}
}

// Forward returns the loss as a scalar tensor.
func (l *MSELoss[B]) Forward(pred, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := pred.Backend()
	if mb, ok := any(backend).(MSEBackend); ok {
		return tensor.FromRaw[float32](mb.MSE(pred.Raw(), targets.Raw()), backend)
	}
	return tensor.FromRaw[float32](ops.MSEForward(pred.Raw(), targets.Raw()), backend)
}
