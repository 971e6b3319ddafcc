package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// IDX container magics, shared by MNIST and Fashion-MNIST.
const (
	idxImageMagic = 2051
	idxLabelMagic = 2049
)

// readIDXImages reads an IDX image file: a big-endian header of magic,
// image count, rows and cols, followed by raw uint8 pixels.
func readIDXImages(path string) (images [][]byte, rows, cols int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	var header struct {
		Magic, Count, Rows, Cols uint32
	}
	if err := binary.Read(f, binary.BigEndian, &header); err != nil {
		return nil, 0, 0, fmt.Errorf("read header of %s: %w", path, err)
	}
	if header.Magic != idxImageMagic {
		return nil, 0, 0, fmt.Errorf("%s: invalid magic %d, want %d", path, header.Magic, idxImageMagic)
	}

	imageSize := int(header.Rows * header.Cols)
	images = make([][]byte, header.Count)
	for i := range images {
		images[i] = make([]byte, imageSize)
		if _, err := io.ReadFull(f, images[i]); err != nil {
			return nil, 0, 0, fmt.Errorf("read image %d of %s: %w", i, path, err)
		}
	}
	return images, int(header.Rows), int(header.Cols), nil
}

// readIDXLabels reads an IDX label file: a big-endian header of magic
// and count, followed by raw uint8 labels.
func readIDXLabels(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var header struct {
		Magic, Count uint32
	}
	if err := binary.Read(f, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	if header.Magic != idxLabelMagic {
		return nil, fmt.Errorf("%s: invalid magic %d, want %d", path, header.Magic, idxLabelMagic)
	}

	labels := make([]byte, header.Count)
	if _, err := io.ReadFull(f, labels); err != nil {
		return nil, fmt.Errorf("read labels of %s: %w", path, err)
	}
	return labels, nil
}
