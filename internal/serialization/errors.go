package serialization

import "errors"

var (
	// ErrInvalidMagic means the file does not start with the expected
	// magic bytes.
	ErrInvalidMagic = errors.New("serialization: invalid magic bytes")

	// ErrUnsupportedVersion means the file was written by a newer or
	// unknown format version.
	ErrUnsupportedVersion = errors.New("serialization: unsupported format version")

	// ErrHeaderTooLarge means the header length field exceeds the
	// sanity bound.
	ErrHeaderTooLarge = errors.New("serialization: header too large")

	// ErrChecksumMismatch means the data section does not match the
	// stored SHA-256.
	ErrChecksumMismatch = errors.New("serialization: checksum mismatch")

	// ErrTensorNotFound means the requested tensor is not in the file.
	ErrTensorNotFound = errors.New("serialization: tensor not found")

	// ErrTruncated means the file is shorter than its header promises.
	ErrTruncated = errors.New("serialization: file truncated")
)
