// Package nn provides neural network building blocks: layers,
// activations, losses, initializers and checkpointing.
package nn

import "github.com/armelito60/IntroToDLPyTorch/internal/tensor"

// Module is a composable network component. Layers and activations
// implement it; containers compose it.
type Module[B tensor.Backend] interface {
	// Forward computes the module's output for a batch of inputs.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns the module's learnable parameters.
	// Parameterless modules return nil.
	Parameters() []*Parameter[B]
}

// Stateful is implemented by modules with persistent state. Keys are
// flat names ("weight", "bias"); containers prefix them with the
// child's position.
type Stateful interface {
	StateDict() map[string]*tensor.RawTensor
	LoadStateDict(state map[string]*tensor.RawTensor) error
}

// Trainable is implemented by modules that behave differently during
// training (dropout). Containers propagate the mode to children.
type Trainable interface {
	Train()
	Eval()
}
