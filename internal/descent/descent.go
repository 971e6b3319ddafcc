// Package descent implements logistic regression trained by batch
// gradient descent, written out longhand. No tensors, no autodiff:
// every formula the framework later automates appears here once in
// plain arithmetic.
package descent

import (
	"fmt"
	"math"
)

// Point is a 2-feature sample with a binary label.
type Point struct {
	X1, X2 float64
	Label  float64
}

// Model is the logistic regression: p(y=1|x) = sigmoid(w·x + b).
type Model struct {
	Weights [2]float64
	Bias    float64
}

// Epoch records the model after one pass over the data.
type Epoch struct {
	Loss     float64
	Accuracy float64
	Weights  [2]float64
	Bias     float64
}

// Sigmoid maps a raw score to (0, 1).
func Sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Predict returns the probability that the point's label is 1.
func (m *Model) Predict(p Point) float64 {
	return Sigmoid(m.Weights[0]*p.X1 + m.Weights[1]*p.X2 + m.Bias)
}

// LogLoss is the binary cross-entropy for a single point:
// -y*log(p) - (1-y)*log(1-p), clamped away from log(0).
func LogLoss(prob, label float64) float64 {
	const eps = 1e-12
	prob = math.Min(math.Max(prob, eps), 1-eps)
	return -label*math.Log(prob) - (1-label)*math.Log(1-prob)
}

// MeanLoss is the average log loss over the set.
func (m *Model) MeanLoss(points []Point) float64 {
	var total float64
	for _, p := range points {
		total += LogLoss(m.Predict(p), p.Label)
	}
	return total / float64(len(points))
}

// Accuracy is the fraction of points classified correctly at the 0.5
// threshold.
func (m *Model) Accuracy(points []Point) float64 {
	correct := 0
	for _, p := range points {
		pred := 0.0
		if m.Predict(p) >= 0.5 {
			pred = 1
		}
		if pred == p.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(points))
}

// Step applies one batch gradient update. The gradient of the log loss
// with respect to each weight is (p - y)*x, averaged over the batch.
func (m *Model) Step(points []Point, lr float64) {
	var gradW1, gradW2, gradB float64
	for _, p := range points {
		err := m.Predict(p) - p.Label
		gradW1 += err * p.X1
		gradW2 += err * p.X2
		gradB += err
	}
	n := float64(len(points))
	m.Weights[0] -= lr * gradW1 / n
	m.Weights[1] -= lr * gradW2 / n
	m.Bias -= lr * gradB / n
}

// Train runs gradient descent from zero weights and returns the model
// together with the per-epoch history, so callers can watch the loss
// fall and the boundary move.
func Train(points []Point, lr float64, epochs int) (*Model, []Epoch, error) {
	if len(points) == 0 {
		return nil, nil, fmt.Errorf("descent: no training points")
	}
	if lr <= 0 {
		return nil, nil, fmt.Errorf("descent: learning rate must be positive, got %v", lr)
	}

	model := &Model{}
	history := make([]Epoch, 0, epochs)
	for epoch := 0; epoch < epochs; epoch++ {
		model.Step(points, lr)
		history = append(history, Epoch{
			Loss:     model.MeanLoss(points),
			Accuracy: model.Accuracy(points),
			Weights:  model.Weights,
			Bias:     model.Bias,
		})
	}
	return model, history, nil
}

// Boundary returns the decision line x2 = slope*x1 + intercept, where
// the predicted probability crosses 0.5. It errors when the line is
// vertical (w2 == 0).
func (m *Model) Boundary() (slope, intercept float64, err error) {
	if m.Weights[1] == 0 {
		return 0, 0, fmt.Errorf("descent: boundary is vertical")
	}
	return -m.Weights[0] / m.Weights[1], -m.Bias / m.Weights[1], nil
}
