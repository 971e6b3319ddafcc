package nn

import (
	"math"
	"math/rand"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// XavierUniform fills t with samples from U(-a, a) where
// a = sqrt(6 / (fanIn + fanOut)). Suits sigmoid and tanh layers.
func XavierUniform[B tensor.Backend](t *tensor.Tensor[float32, B], fanIn, fanOut int) {
	limit := float32(math.Sqrt(6 / float64(fanIn+fanOut)))
	data := t.Data()
	for i := range data {
		data[i] = (rand.Float32()*2 - 1) * limit
	}
}

// KaimingNormal fills t with samples from N(0, sqrt(2/fanIn)). Suits
// ReLU layers.
func KaimingNormal[B tensor.Backend](t *tensor.Tensor[float32, B], fanIn int) {
	std := math.Sqrt(2 / float64(fanIn))
	data := t.Data()
	for i := range data {
		data[i] = float32(rand.NormFloat64() * std)
	}
}

// ZeroInit fills t with zeros.
func ZeroInit[B tensor.Backend](t *tensor.Tensor[float32, B]) {
	data := t.Data()
	for i := range data {
		data[i] = 0
	}
}
