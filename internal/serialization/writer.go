package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/armelito60/IntroToDLPyTorch/internal/tensor"
)

// Save writes a state dict and its metadata to path. Tensors are laid
// out in sorted name order so identical state produces identical
// files. The file is written to a temp sibling and renamed, so a crash
// mid-write never leaves a half-written checkpoint behind.
func Save(path string, state map[string]*tensor.RawTensor, header Header) error {
	header.FormatVersion = FormatVersion
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}

	names := make([]string, 0, len(state))
	for name := range state {
		names = append(names, name)
	}
	sort.Strings(names)

	var data bytes.Buffer
	header.Tensors = header.Tensors[:0]
	for _, name := range names {
		t := state[name]
		offset := alignUp(int64(data.Len()))
		for int64(data.Len()) < offset {
			data.WriteByte(0)
		}
		data.Write(t.Data())
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  t.DType().String(),
			Shape:  t.Shape(),
			Offset: offset,
			Size:   int64(t.ByteSize()),
		})
	}

	headerJSON, err := json.Marshal(&header)
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(Magic)
	binary.Write(&buf, binary.LittleEndian, uint32(FormatVersion))
	binary.Write(&buf, binary.LittleEndian, uint64(len(headerJSON)))
	checksum := ComputeChecksum(data.Bytes())
	buf.Write(checksum[:])
	buf.Write(make([]byte, fixedHeaderSize-buf.Len()))

	buf.Write(headerJSON)
	padded := alignUp(int64(fixedHeaderSize + len(headerJSON)))
	for int64(buf.Len()) < padded {
		buf.WriteByte(0)
	}
	buf.Write(data.Bytes())

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
