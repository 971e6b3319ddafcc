package autodiff

import (
	"github.com/armelito60/IntroToDLPyTorch/internal/autodiff/ops"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// GradientTape records operations during the forward pass and replays
// them in reverse to compute gradients. A tape is not safe for
// concurrent use; each training loop owns its own backend and tape.
type GradientTape struct {
	operations []ops.Operation
	recording  bool
}

// NewGradientTape creates an empty tape with recording disabled.
func NewGradientTape() *GradientTape {
	return &GradientTape{}
}

// StartRecording turns on recording of subsequent operations.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording turns off recording. Already recorded operations stay
// on the tape.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording reports whether operations are currently recorded.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record appends an operation to the tape. Callers check IsRecording
// first; Record itself is unconditional.
func (t *GradientTape) Record(op ops.Operation) {
	t.operations = append(t.operations, op)
}

// Clear drops all recorded operations. Recording state is unchanged.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Backward walks the tape in reverse from loss, seeded with seedGrad,
// and returns accumulated gradients keyed by raw tensor. Operations
// whose output never received a gradient are skipped, so tensors
// computed on side branches cost nothing.
func (t *GradientTape) Backward(loss, seedGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	if len(t.operations) == 0 {
		return grads
	}
	grads[loss] = seedGrad

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outputGrad, ok := grads[op.Output()]
		if !ok {
			continue
		}

		inputGrads := op.Backward(outputGrad, backend)
		for j, input := range op.Inputs() {
			grad := inputGrads[j]
			if grad == nil {
				continue
			}
			if existing, ok := grads[input]; ok {
				grads[input] = backend.Add(existing, grad)
			} else {
				grads[input] = grad
			}
		}
	}
	return grads
}
