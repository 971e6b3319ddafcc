// Copyright 2025 IntroToDLPyTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn is the public API for neural network modules, losses and
// checkpointing.
package nn

import (
	"github.com/armelito60/IntroToDLPyTorch/internal/nn"
	"github.com/armelito60/IntroToDLPyTorch/internal/serialization"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Module is the interface all network components implement.
type Module[B tensor.Backend] = nn.Module[B]

// Stateful is implemented by modules with persistent state.
type Stateful = nn.Stateful

// Parameter is a named learnable tensor.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter wraps a tensor as a learnable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Linear is a fully connected layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a linear layer with Xavier-initialized weights.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	layer, _ := nn.NewLinear(784, 128, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) (*Linear[B], error) {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// ReLU is the rectified linear activation.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] { return nn.NewReLU[B]() }

// Sigmoid is the logistic activation.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a sigmoid activation.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] { return nn.NewSigmoid[B]() }

// Tanh is the hyperbolic tangent activation.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a tanh activation.
func NewTanh[B tensor.Backend]() *Tanh[B] { return nn.NewTanh[B]() }

// Dropout zeroes activations with probability p during training.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a dropout module with drop probability p.
func NewDropout[B tensor.Backend](p float32) (*Dropout[B], error) {
	return nn.NewDropout[B](p)
}

// Sequential chains modules.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Arch describes a FeedForward network's layer widths.
type Arch = serialization.Arch

// FeedForward is a fully connected classifier rebuildable from its
// architecture description.
type FeedForward[B tensor.Backend] = nn.FeedForward[B]

// NewFeedForward builds a fully connected classifier.
//
// Example:
//
//	model, _ := nn.NewFeedForward(nn.Arch{
//		InputSize:   784,
//		OutputSize:  10,
//		HiddenSizes: []int{128, 64},
//		Dropout:     0.2,
//	}, backend)
func NewFeedForward[B tensor.Backend](arch Arch, backend B) (*FeedForward[B], error) {
	return nn.NewFeedForward(arch, backend)
}

// Losses

// CrossEntropyLoss is the mean cross-entropy over int32 class labels.
type CrossEntropyLoss[B tensor.Backend] = nn.CrossEntropyLoss[B]

// NewCrossEntropyLoss creates a cross-entropy loss.
func NewCrossEntropyLoss[B tensor.Backend]() *CrossEntropyLoss[B] {
	return nn.NewCrossEntropyLoss[B]()
}

// BCEWithLogitsLoss is the mean binary cross-entropy on raw logits.
type BCEWithLogitsLoss[B tensor.Backend] = nn.BCEWithLogitsLoss[B]

// NewBCEWithLogitsLoss creates a binary cross-entropy loss.
func NewBCEWithLogitsLoss[B tensor.Backend]() *BCEWithLogitsLoss[B] {
	return nn.NewBCEWithLogitsLoss[B]()
}

// MSELoss is the mean squared error.
type MSELoss[B tensor.Backend] = nn.MSELoss[B]

// NewMSELoss creates a mean squared error loss.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return nn.NewMSELoss[B]()
}

// Accuracy returns the fraction of correctly classified rows.
func Accuracy[B tensor.Backend](logits *tensor.Tensor[float32, B], labels *tensor.Tensor[int32, B]) float64 {
	return nn.Accuracy(logits, labels)
}

// Softmax converts logits into rowwise probabilities.
func Softmax[B tensor.Backend](logits *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.Softmax(logits)
}

// Checkpointing

// OptimizerState is the optimizer slice persisted in checkpoints.
type OptimizerState = nn.OptimizerState

// CheckpointInfo carries training progress stored in a checkpoint.
type CheckpointInfo = serialization.CheckpointInfo

// ErrNotCheckpoint is returned when loading a weights-only file as a
// checkpoint.
var ErrNotCheckpoint = nn.ErrNotCheckpoint

// SaveModel writes model weights and architecture to path.
func SaveModel[B tensor.Backend](path string, model *FeedForward[B]) error {
	return nn.SaveModel(path, model)
}

// LoadModel rebuilds a model from the architecture stored at path.
func LoadModel[B tensor.Backend](path string, backend B) (*FeedForward[B], error) {
	return nn.LoadModel(path, backend)
}

// SaveCheckpoint writes a resumable training checkpoint.
func SaveCheckpoint[B tensor.Backend](path string, model *FeedForward[B], opt OptimizerState, epoch, step int, loss float64) error {
	return nn.SaveCheckpoint(path, model, opt, epoch, step, loss)
}

// LoadCheckpoint restores model and optimizer state from a checkpoint.
func LoadCheckpoint[B tensor.Backend](path string, model *FeedForward[B], opt OptimizerState) (*CheckpointInfo, error) {
	return nn.LoadCheckpoint(path, model, opt)
}
