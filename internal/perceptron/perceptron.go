// Package perceptron implements single perceptrons with a step
// activation, the classic logic-gate weight settings, and the
// perceptron learning rule. Everything here is plain float64
// arithmetic on purpose: the point is to see the mechanism with no
// tensor machinery in the way.
package perceptron

import "fmt"

// Perceptron is a linear threshold unit: fire when w·x + b >= 0.
type Perceptron struct {
	Weights []float64
	Bias    float64
}

// Forward returns 1 if the weighted sum plus bias is non-negative,
// otherwise 0. It panics when the input width does not match the
// weights.
func (p *Perceptron) Forward(inputs []float64) int {
	if len(inputs) != len(p.Weights) {
		panic(fmt.Sprintf("perceptron: expected %d inputs, got %d", len(p.Weights), len(inputs)))
	}
	sum := p.Bias
	for i, x := range inputs {
		sum += p.Weights[i] * x
	}
	if sum >= 0 {
		return 1
	}
	return 0
}

// Score returns the raw weighted sum w·x + b, used when inspecting how
// far a point sits from the decision boundary.
func (p *Perceptron) Score(inputs []float64) float64 {
	if len(inputs) != len(p.Weights) {
		panic(fmt.Sprintf("perceptron: expected %d inputs, got %d", len(p.Weights), len(inputs)))
	}
	sum := p.Bias
	for i, x := range inputs {
		sum += p.Weights[i] * x
	}
	return sum
}

// AND fires only when both inputs are 1: the line x1 + x2 = 1.5
// separates (1,1) from the rest.
func AND() *Perceptron {
	return &Perceptron{Weights: []float64{1, 1}, Bias: -1.5}
}

// OR fires when either input is 1: the same slope as AND with the
// boundary pulled toward the origin.
func OR() *Perceptron {
	return &Perceptron{Weights: []float64{1, 1}, Bias: -0.5}
}

// NOT inverts its single input.
func NOT() *Perceptron {
	return &Perceptron{Weights: []float64{-1}, Bias: 0.5}
}

// XOR is not linearly separable, so no single perceptron computes it.
// Composing gates does: XOR(a, b) = AND(OR(a, b), NOT(AND(a, b))).
func XOR(a, b float64) int {
	and := AND()
	or := OR()
	not := NOT()

	orOut := float64(or.Forward([]float64{a, b}))
	nandOut := float64(not.Forward([]float64{float64(and.Forward([]float64{a, b}))}))
	return and.Forward([]float64{orOut, nandOut})
}
