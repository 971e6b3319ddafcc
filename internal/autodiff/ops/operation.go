// Package ops defines the differentiable operations recorded on the
// gradient tape. Every operation keeps its input and output tensors
// from the forward pass and knows how to turn the gradient of its
// output into gradients of its inputs.
package ops

import "github.com/armelito60/IntroToDLPyTorch/internal/tensor"

// Operation is one step of the computation graph.
type Operation interface {
	// Backward computes input gradients from the output gradient.
	// The returned slice matches Inputs() in order; a nil entry marks
	// a non-differentiable input (integer labels, dropout masks).
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors of the forward pass.
	Inputs() []*tensor.RawTensor

	// Output returns the tensor produced by the forward pass.
	Output() *tensor.RawTensor
}
