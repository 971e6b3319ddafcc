package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// File is a parsed checkpoint. The data section is held in memory;
// tensors are materialized on demand.
type File struct {
	Header Header

	byName map[string]*TensorMeta
	data   []byte
}

// Open reads and validates a checkpoint file: magic, version, header
// bounds and the data checksum.
func Open(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(raw) < fixedHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(raw))
	}
	if !bytes.Equal(raw[:4], []byte(Magic)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, raw[:4])
	}
	version := binary.LittleEndian.Uint32(raw[4:8])
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	headerLen := binary.LittleEndian.Uint64(raw[8:16])
	if headerLen > maxHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerLen)
	}
	var checksum [32]byte
	copy(checksum[:], raw[16:48])

	headerEnd := fixedHeaderSize + int64(headerLen)
	dataStart := alignUp(headerEnd)
	if int64(len(raw)) < dataStart {
		return nil, fmt.Errorf("%w: header extends past end of file", ErrTruncated)
	}

	f := &File{data: raw[dataStart:]}
	if err := json.Unmarshal(raw[fixedHeaderSize:headerEnd], &f.Header); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if err := ValidateChecksum(f.data, checksum); err != nil {
		return nil, err
	}

	f.byName = make(map[string]*TensorMeta, len(f.Header.Tensors))
	for i := range f.Header.Tensors {
		meta := &f.Header.Tensors[i]
		if meta.Offset < 0 || meta.Size < 0 || meta.Offset+meta.Size > int64(len(f.data)) {
			return nil, fmt.Errorf("%w: tensor %q extends past end of file", ErrTruncated, meta.Name)
		}
		f.byName[meta.Name] = meta
	}
	return f, nil
}

// TensorNames lists the stored tensors in header order.
func (f *File) TensorNames() []string {
	names := make([]string, len(f.Header.Tensors))
	for i, meta := range f.Header.Tensors {
		names[i] = meta.Name
	}
	return names
}

// Tensor materializes a stored tensor by name.
func (f *File) Tensor(name string) (*tensor.RawTensor, error) {
	meta, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
	}
	dtype, err := dtypeFromString(meta.DType)
	if err != nil {
		return nil, fmt.Errorf("tensor %q: %w", name, err)
	}
	raw, err := tensor.NewRaw(tensor.Shape(meta.Shape), dtype)
	if err != nil {
		return nil, fmt.Errorf("tensor %q: %w", name, err)
	}
	if int64(raw.ByteSize()) != meta.Size {
		return nil, fmt.Errorf("tensor %q: shape %v needs %d bytes but header claims %d",
			name, meta.Shape, raw.ByteSize(), meta.Size)
	}
	copy(raw.Data(), f.data[meta.Offset:meta.Offset+meta.Size])
	return raw, nil
}

// StateDict materializes every stored tensor.
func (f *File) StateDict() (map[string]*tensor.RawTensor, error) {
	state := make(map[string]*tensor.RawTensor, len(f.Header.Tensors))
	for _, meta := range f.Header.Tensors {
		t, err := f.Tensor(meta.Name)
		if err != nil {
			return nil, err
		}
		state[meta.Name] = t
	}
	return state, nil
}

func dtypeFromString(s string) (tensor.DataType, error) {
	switch s {
	case "float32":
		return tensor.Float32, nil
	case "float64":
		return tensor.Float64, nil
	case "int32":
		return tensor.Int32, nil
	case "uint8":
		return tensor.Uint8, nil
	default:
		return 0, fmt.Errorf("unknown dtype %q", s)
	}
}
