// Package serialization implements the on-disk model and checkpoint
// container.
//
// File layout, all integers little-endian:
//
//	offset 0x00: magic "IDLC" (4 bytes)
//	offset 0x04: format version (uint32)
//	offset 0x08: JSON header length (uint64)
//	offset 0x10: SHA-256 of the data section (32 bytes)
//	offset 0x30: reserved (16 bytes, zero)
//	offset 0x40: JSON header, padded with zeros to a 64-byte boundary
//	then:        raw tensor data, each tensor 64-byte aligned
//
// Tensor offsets in the header are relative to the start of the data
// section (the first aligned byte after the JSON header).
package serialization

import "time"

const (
	// Magic identifies checkpoint files.
	Magic = "IDLC"

	// FormatVersion is the current container version.
	FormatVersion = 1

	// fixedHeaderSize is the byte length of the fixed header before
	// the JSON section.
	fixedHeaderSize = 64

	// alignment pads the JSON header and every tensor blob.
	alignment = 64

	// maxHeaderSize bounds the JSON header while reading, so a
	// corrupted length field cannot trigger a huge allocation.
	maxHeaderSize = 16 << 20
)

// TensorMeta locates one tensor inside the data section.
type TensorMeta struct {
	Name   string `json:"name"`
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Offset int64  `json:"offset"`
	Size   int64  `json:"size"`
}

// Arch describes a fully connected network precisely enough to rebuild
// it: layer widths and the dropout probability between hidden layers.
type Arch struct {
	InputSize   int     `json:"input_size"`
	OutputSize  int     `json:"output_size"`
	HiddenSizes []int   `json:"hidden_sizes"`
	Dropout     float32 `json:"dropout,omitempty"`
}

// CheckpointInfo carries training progress for resumable checkpoints.
type CheckpointInfo struct {
	Epoch           int                `json:"epoch"`
	Step            int                `json:"step"`
	Loss            float64            `json:"loss"`
	OptimizerType   string             `json:"optimizer_type,omitempty"`
	OptimizerConfig map[string]float64 `json:"optimizer_config,omitempty"`
}

// Header is the JSON metadata section.
type Header struct {
	FormatVersion int               `json:"format_version"`
	CreatedAt     time.Time         `json:"created_at"`
	Tensors       []TensorMeta      `json:"tensors"`
	Arch          *Arch             `json:"arch,omitempty"`
	Checkpoint    *CheckpointInfo   `json:"checkpoint,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// alignUp rounds n up to the next multiple of alignment.
func alignUp(n int64) int64 {
	return (n + alignment - 1) / alignment * alignment
}
