package nn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/armelito60/IntroToDLPyTorch/internal/serialization"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// ErrNotCheckpoint means a file holds model weights but no training
// progress, so it cannot be resumed from.
var ErrNotCheckpoint = errors.New("nn: file is not a checkpoint")

// OptimizerState is the slice of an optimizer a checkpoint persists.
type OptimizerState interface {
	StateDict() map[string]*tensor.RawTensor
	LoadStateDict(state map[string]*tensor.RawTensor) error
	Name() string
	Config() map[string]float64
}

// optimizerPrefix separates optimizer tensors from model tensors in a
// combined checkpoint state dict.
const optimizerPrefix = "optimizer."

// SaveModel writes the model's weights together with its architecture,
// so LoadModel can rebuild the network without outside knowledge.
func SaveModel[B tensor.Backend](path string, model *FeedForward[B]) error {
	arch := model.Arch()
	return serialization.Save(path, model.StateDict(), serialization.Header{Arch: &arch})
}

// LoadModel rebuilds a FeedForward from the architecture stored in the
// file and loads its weights.
func LoadModel[B tensor.Backend](path string, backend B) (*FeedForward[B], error) {
	f, err := serialization.Open(path)
	if err != nil {
		return nil, err
	}
	if f.Header.Arch == nil {
		return nil, fmt.Errorf("nn: %s carries no architecture metadata", path)
	}

	model, err := NewFeedForward(*f.Header.Arch, backend)
	if err != nil {
		return nil, err
	}
	state, err := f.StateDict()
	if err != nil {
		return nil, err
	}
	stripOptimizerState(state)
	if err := model.LoadStateDict(state); err != nil {
		return nil, fmt.Errorf("load model state: %w", err)
	}
	return model, nil
}

// SaveCheckpoint writes model weights, optimizer state and training
// progress into a single resumable file. opt may be nil.
func SaveCheckpoint[B tensor.Backend](path string, model *FeedForward[B], opt OptimizerState, epoch, step int, loss float64) error {
	state := model.StateDict()
	info := serialization.CheckpointInfo{Epoch: epoch, Step: step, Loss: loss}
	if opt != nil {
		for key, t := range opt.StateDict() {
			state[optimizerPrefix+key] = t
		}
		info.OptimizerType = opt.Name()
		info.OptimizerConfig = opt.Config()
	}

	arch := model.Arch()
	return serialization.Save(path, state, serialization.Header{
		Arch:       &arch,
		Checkpoint: &info,
	})
}

// LoadCheckpoint restores model and optimizer state from a checkpoint
// written by SaveCheckpoint. The model must already be constructed;
// loading into a network of different layer sizes fails with the
// layer's shape-mismatch error. opt may be nil to ignore optimizer
// state.
func LoadCheckpoint[B tensor.Backend](path string, model *FeedForward[B], opt OptimizerState) (*serialization.CheckpointInfo, error) {
	f, err := serialization.Open(path)
	if err != nil {
		return nil, err
	}
	if f.Header.Checkpoint == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotCheckpoint, path)
	}

	state, err := f.StateDict()
	if err != nil {
		return nil, err
	}
	optState := make(map[string]*tensor.RawTensor)
	for key, t := range state {
		if rest, ok := strings.CutPrefix(key, optimizerPrefix); ok {
			optState[rest] = t
			delete(state, key)
		}
	}

	if err := model.LoadStateDict(state); err != nil {
		return nil, fmt.Errorf("load model state: %w", err)
	}
	if opt != nil && len(optState) > 0 {
		if err := opt.LoadStateDict(optState); err != nil {
			return nil, fmt.Errorf("load optimizer state: %w", err)
		}
	}
	return f.Header.Checkpoint, nil
}

func stripOptimizerState(state map[string]*tensor.RawTensor) {
	for key := range state {
		if strings.HasPrefix(key, optimizerPrefix) {
			delete(state, key)
		}
	}
}
