package perceptron

import (
	"fmt"
	"math/rand"
)

// Train learns weights with the perceptron rule: for every
// misclassified point, nudge the boundary toward it by lr. points is
// an N x d matrix of inputs, labels the expected 0/1 outputs. Training
// stops early once an epoch makes no mistakes.
func Train(points [][]float64, labels []int, lr float64, epochs int) (*Perceptron, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("perceptron: no training points")
	}
	if len(points) != len(labels) {
		return nil, fmt.Errorf("perceptron: %d points but %d labels", len(points), len(labels))
	}
	if lr <= 0 {
		return nil, fmt.Errorf("perceptron: learning rate must be positive, got %v", lr)
	}

	dim := len(points[0])
	p := &Perceptron{Weights: make([]float64, dim)}
	for i := range p.Weights {
		p.Weights[i] = rand.Float64()
	}
	p.Bias = rand.Float64()

	for epoch := 0; epoch < epochs; epoch++ {
		mistakes := 0
		for i, x := range points {
			got := p.Forward(x)
			if got == labels[i] {
				continue
			}
			mistakes++
			// Predicted 1 on a 0-point: move the line toward the
			// point. Predicted 0 on a 1-point: move it away.
			direction := float64(labels[i] - got)
			for j := range p.Weights {
				p.Weights[j] += lr * direction * x[j]
			}
			p.Bias += lr * direction
		}
		if mistakes == 0 {
			break
		}
	}
	return p, nil
}
