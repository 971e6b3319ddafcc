package dataset

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armelito60/IntroToDLPyTorch/internal/backend/cpu"
	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "0.5,1.5,1\n2.0,3.0,0\n")
	points, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 0.5, points[0].X1)
	assert.Equal(t, 1.5, points[0].X2)
	assert.Equal(t, 1.0, points[0].Label)
	assert.Equal(t, 0.0, points[1].Label)
}

func TestLoadCSVSkipsHeader(t *testing.T) {
	path := writeCSV(t, "x1,x2,label\n0.5,1.5,1\n")
	points, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 0.5, points[0].X1)
}

func TestLoadCSVBadRow(t *testing.T) {
	path := writeCSV(t, "0.5,1.5,1\n0.1,oops,0\n")
	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadCSVBadLabel(t *testing.T) {
	path := writeCSV(t, "0.1,0.2,0\n0.5,1.5,2\n")
	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label must be 0 or 1")
}

func TestLoadCSVEmpty(t *testing.T) {
	_, err := LoadCSV(writeCSV(t, ""))
	assert.Error(t, err)

	_, err = LoadCSV(writeCSV(t, "x1,x2,label\n"))
	assert.Error(t, err)
}

func TestLoadCSVWrongFieldCount(t *testing.T) {
	_, err := LoadCSV(writeCSV(t, "0.5,1.5\n"))
	assert.Error(t, err)
}

// writeIDXPair writes a minimal images/labels file pair in the MNIST
// container format.
func writeIDXPair(t *testing.T, dir string, images [][]byte, labels []byte, rows, cols int) (string, string) {
	t.Helper()

	var imgBuf bytes.Buffer
	require.NoError(t, binary.Write(&imgBuf, binary.BigEndian, uint32(idxImageMagic)))
	require.NoError(t, binary.Write(&imgBuf, binary.BigEndian, uint32(len(images))))
	require.NoError(t, binary.Write(&imgBuf, binary.BigEndian, uint32(rows)))
	require.NoError(t, binary.Write(&imgBuf, binary.BigEndian, uint32(cols)))
	for _, img := range images {
		imgBuf.Write(img)
	}
	imagesPath := filepath.Join(dir, "images-idx3-ubyte")
	require.NoError(t, os.WriteFile(imagesPath, imgBuf.Bytes(), 0o644))

	var lblBuf bytes.Buffer
	require.NoError(t, binary.Write(&lblBuf, binary.BigEndian, uint32(idxLabelMagic)))
	require.NoError(t, binary.Write(&lblBuf, binary.BigEndian, uint32(len(labels))))
	lblBuf.Write(labels)
	labelsPath := filepath.Join(dir, "labels-idx1-ubyte")
	require.NoError(t, os.WriteFile(labelsPath, lblBuf.Bytes(), 0o644))

	return imagesPath, labelsPath
}

func TestLoadPair(t *testing.T) {
	images := [][]byte{
		{0, 128, 255, 64},
		{255, 255, 0, 0},
	}
	imagesPath, labelsPath := writeIDXPair(t, t.TempDir(), images, []byte{3, 7}, 2, 2)

	set, err := LoadPair(imagesPath, labelsPath)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 2, set.Rows)
	assert.Equal(t, 2, set.Cols)
	assert.Equal(t, []int32{3, 7}, set.Labels)

	// Pixels are normalized to [0, 1].
	assert.InDelta(t, 0.0, float64(set.Images[0][0]), 1e-6)
	assert.InDelta(t, 128.0/255.0, float64(set.Images[0][1]), 1e-6)
	assert.InDelta(t, 1.0, float64(set.Images[0][2]), 1e-6)
}

func TestLoadPairBadMagic(t *testing.T) {
	dir := t.TempDir()
	imagesPath, labelsPath := writeIDXPair(t, dir, [][]byte{{0}}, []byte{0}, 1, 1)

	raw, err := os.ReadFile(imagesPath)
	require.NoError(t, err)
	raw[3] = 0xff
	require.NoError(t, os.WriteFile(imagesPath, raw, 0o644))

	_, err = LoadPair(imagesPath, labelsPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid magic")
}

func TestLoadPairCountMismatch(t *testing.T) {
	imagesPath, labelsPath := writeIDXPair(t, t.TempDir(), [][]byte{{0}, {1}}, []byte{5}, 1, 1)
	_, err := LoadPair(imagesPath, labelsPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "labels")
}

func TestShuffleKeepsPairs(t *testing.T) {
	set := Synthetic(50, 4, 4, 5, rand.New(rand.NewSource(1)))

	// Encode the label into each image's first pixel so the pairing
	// survives any permutation check.
	for i := range set.Images {
		set.Images[i][0] = float32(set.Labels[i]) + 10
	}
	set.Shuffle(rand.New(rand.NewSource(2)))

	for i := range set.Images {
		assert.Equal(t, float32(set.Labels[i])+10, set.Images[i][0], "pair broken at %d", i)
	}
}

func TestSplit(t *testing.T) {
	set := Synthetic(100, 4, 4, 5, rand.New(rand.NewSource(1)))
	train, validation, err := set.Split(0.2)
	require.NoError(t, err)
	assert.Equal(t, 80, train.Len())
	assert.Equal(t, 20, validation.Len())
	assert.Equal(t, set.Rows, train.Rows)

	_, _, err = set.Split(0)
	assert.Error(t, err)
	_, _, err = set.Split(1.5)
	assert.Error(t, err)
}

func TestBatches(t *testing.T) {
	backend := cpu.New()
	set := Synthetic(10, 2, 3, 2, rand.New(rand.NewSource(1)))

	batches, err := Batches(set, 4, backend)
	require.NoError(t, err)
	require.Len(t, batches, 3)

	assert.True(t, batches[0].Inputs.Shape().Equal(tensor.Shape{4, 6}))
	assert.True(t, batches[0].Labels.Shape().Equal(tensor.Shape{4}))
	// The final batch is short, not dropped.
	assert.True(t, batches[2].Inputs.Shape().Equal(tensor.Shape{2, 6}))

	// First sample of the first batch matches the set.
	assert.Equal(t, set.Images[0], batches[0].Inputs.Raw().AsFloat32()[:6])
}

func TestBatchesErrors(t *testing.T) {
	backend := cpu.New()
	set := Synthetic(4, 2, 2, 2, rand.New(rand.NewSource(1)))
	_, err := Batches(set, 0, backend)
	assert.Error(t, err)

	empty := &ImageSet{Rows: 2, Cols: 2}
	_, err = Batches(empty, 4, backend)
	assert.Error(t, err)
}

func TestSyntheticSeparable(t *testing.T) {
	set := Synthetic(20, 8, 8, 4, rand.New(rand.NewSource(7)))
	require.Equal(t, 20, set.Len())

	// Each class's band rows must be bright and the rest dim.
	for i, img := range set.Images {
		class := int(set.Labels[i])
		bandStart := class * 8 / 4
		inBand := img[bandStart*8]
		assert.GreaterOrEqual(t, inBand, float32(0.75), "sample %d class %d", i, class)
	}

	assert.Equal(t, "Bag", FashionClasses[8])
	assert.Len(t, MNISTClasses, 10)
	assert.Len(t, FashionClasses, 10)
}
