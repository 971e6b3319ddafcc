package dataset

import (
	"fmt"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Batch is one training step's worth of data as tensors: inputs
// [n, rows*cols] float32 and labels [n] int32.
type Batch[B tensor.Backend] struct {
	Inputs *tensor.Tensor[float32, B]
	Labels *tensor.Tensor[int32, B]
}

// Batches slices the set into batches of at most batchSize samples.
// The final batch may be short; no sample is dropped.
func Batches[B tensor.Backend](s *ImageSet, batchSize int, backend B) ([]Batch[B], error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("empty image set")
	}

	imageSize := s.Rows * s.Cols
	var batches []Batch[B]
	for start := 0; start < s.Len(); start += batchSize {
		end := min(start+batchSize, s.Len())
		n := end - start

		inputs := make([]float32, 0, n*imageSize)
		for _, img := range s.Images[start:end] {
			inputs = append(inputs, img...)
		}
		inputTensor, err := tensor.FromSlice(inputs, tensor.Shape{n, imageSize}, backend)
		if err != nil {
			return nil, err
		}
		labelTensor, err := tensor.FromSlice(s.Labels[start:end], tensor.Shape{n}, backend)
		if err != nil {
			return nil, err
		}
		batches = append(batches, Batch[B]{Inputs: inputTensor, Labels: labelTensor})
	}
	return batches, nil
}
