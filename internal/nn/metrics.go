package nn

import (
	"fmt"
	"math"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Accuracy returns the fraction of rows whose argmax over logits [N,C]
// matches the int32 label in labels [N].
func Accuracy[B tensor.Backend](logits *tensor.Tensor[float32, B], labels *tensor.Tensor[int32, B]) float64 {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("accuracy: expected 2-D logits, got shape %v", shape))
	}
	n, c := shape[0], shape[1]
	if labels.NumElements() != n {
		panic(fmt.Sprintf("accuracy: %d logit rows but %d labels", n, labels.NumElements()))
	}

	data := logits.Data()
	labelData := labels.Data()
	correct := 0
	for i := 0; i < n; i++ {
		if argmaxRow(data[i*c:(i+1)*c]) == int(labelData[i]) {
			correct++
		}
	}
	return float64(correct) / float64(n)
}

// Softmax converts logits [N,C] into rowwise probabilities. It is an
// inference helper and is never recorded on the tape; training goes
// through CrossEntropyLoss, which fuses the softmax.
func Softmax[B tensor.Backend](logits *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("softmax: expected 2-D logits, got shape %v", shape))
	}
	n, c := shape[0], shape[1]

	out, err := tensor.New[float32](shape, logits.Backend())
	if err != nil {
		panic(err)
	}
	src, dst := logits.Data(), out.Data()
	for i := 0; i < n; i++ {
		row := src[i*c : (i+1)*c]
		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}
		var sum float64
		for j, v := range row {
			e := math.Exp(float64(v - maxVal))
			dst[i*c+j] = float32(e)
			sum += e
		}
		for j := 0; j < c; j++ {
			dst[i*c+j] = float32(float64(dst[i*c+j]) / sum)
		}
	}
	return out
}

func argmaxRow(row []float32) int {
	best := 0
	for j, v := range row {
		if v > row[best] {
			best = j
		}
	}
	return best
}
