package dataset

import (
	"fmt"
	"math/rand"
	"path/filepath"
)

// ImageSet holds flattened images with integer class labels. Pixels
// are normalized to [0, 1].
type ImageSet struct {
	Images [][]float32 // [n][rows*cols]
	Labels []int32     // [n]
	Rows   int
	Cols   int
}

// MNISTClasses are the digit names.
var MNISTClasses = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

// FashionClasses are the Fashion-MNIST garment names. The container
// format is identical to MNIST; only the label meanings differ.
var FashionClasses = []string{
	"T-shirt/top", "Trouser", "Pullover", "Dress", "Coat",
	"Sandal", "Shirt", "Sneaker", "Bag", "Ankle boot",
}

// The standard file names inside an MNIST-format directory.
const (
	trainImagesFile = "train-images-idx3-ubyte"
	trainLabelsFile = "train-labels-idx1-ubyte"
	testImagesFile  = "t10k-images-idx3-ubyte"
	testLabelsFile  = "t10k-labels-idx1-ubyte"
)

// Load reads the four standard IDX files from dir and returns the
// train and test sets.
func Load(dir string) (train, test *ImageSet, err error) {
	train, err = loadPair(filepath.Join(dir, trainImagesFile), filepath.Join(dir, trainLabelsFile))
	if err != nil {
		return nil, nil, err
	}
	test, err = loadPair(filepath.Join(dir, testImagesFile), filepath.Join(dir, testLabelsFile))
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// LoadPair reads one images/labels IDX file pair.
func LoadPair(imagesPath, labelsPath string) (*ImageSet, error) {
	return loadPair(imagesPath, labelsPath)
}

func loadPair(imagesPath, labelsPath string) (*ImageSet, error) {
	rawImages, rows, cols, err := readIDXImages(imagesPath)
	if err != nil {
		return nil, err
	}
	rawLabels, err := readIDXLabels(labelsPath)
	if err != nil {
		return nil, err
	}
	if len(rawImages) != len(rawLabels) {
		return nil, fmt.Errorf("%d images but %d labels", len(rawImages), len(rawLabels))
	}

	set := &ImageSet{
		Images: make([][]float32, len(rawImages)),
		Labels: make([]int32, len(rawLabels)),
		Rows:   rows,
		Cols:   cols,
	}
	for i, img := range rawImages {
		pixels := make([]float32, len(img))
		for j, p := range img {
			pixels[j] = float32(p) / 255
		}
		set.Images[i] = pixels
		set.Labels[i] = int32(rawLabels[i])
	}
	return set, nil
}

// Len returns the number of samples.
func (s *ImageSet) Len() int {
	return len(s.Images)
}

// Shuffle permutes images and labels together (Fisher-Yates).
func (s *ImageSet) Shuffle(rng *rand.Rand) {
	rng.Shuffle(s.Len(), func(i, j int) {
		s.Images[i], s.Images[j] = s.Images[j], s.Images[i]
		s.Labels[i], s.Labels[j] = s.Labels[j], s.Labels[i]
	})
}

// Split carves off the last ratio of the set for validation.
func (s *ImageSet) Split(validationRatio float64) (train, validation *ImageSet, err error) {
	if validationRatio <= 0 || validationRatio >= 1 {
		return nil, nil, fmt.Errorf("validation ratio must be in (0, 1), got %v", validationRatio)
	}
	cut := s.Len() - int(float64(s.Len())*validationRatio)
	if cut == 0 || cut == s.Len() {
		return nil, nil, fmt.Errorf("split of %d samples at ratio %v leaves an empty side", s.Len(), validationRatio)
	}
	train = &ImageSet{Images: s.Images[:cut], Labels: s.Labels[:cut], Rows: s.Rows, Cols: s.Cols}
	validation = &ImageSet{Images: s.Images[cut:], Labels: s.Labels[cut:], Rows: s.Rows, Cols: s.Cols}
	return train, validation, nil
}

// Synthetic builds a small fake image set for smoke tests and demos:
// class k gets a bright band at rows proportional to k, so the classes
// are trivially separable.
func Synthetic(n, rows, cols, numClasses int, rng *rand.Rand) *ImageSet {
	set := &ImageSet{
		Images: make([][]float32, n),
		Labels: make([]int32, n),
		Rows:   rows,
		Cols:   cols,
	}
	for i := 0; i < n; i++ {
		class := i % numClasses
		pixels := make([]float32, rows*cols)
		bandStart := class * rows / numClasses
		bandEnd := (class + 1) * rows / numClasses
		for r := bandStart; r < bandEnd; r++ {
			for c := 0; c < cols; c++ {
				pixels[r*cols+c] = 0.75 + rng.Float32()*0.25
			}
		}
		for j := range pixels {
			if pixels[j] == 0 {
				pixels[j] = rng.Float32() * 0.1
			}
		}
		set.Images[i] = pixels
		set.Labels[i] = int32(class)
	}
	return set
}
