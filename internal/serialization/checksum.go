package serialization

import (
	"crypto/sha256"
	"fmt"
)

// ComputeChecksum returns the SHA-256 digest of the data section.
func ComputeChecksum(data []byte) [sha256.Size]byte {
	return sha256.Sum256(data)
}

// ValidateChecksum compares the data section against a stored digest.
func ValidateChecksum(data []byte, want [sha256.Size]byte) error {
	got := ComputeChecksum(data)
	if got != want {
		return fmt.Errorf("%w: want %x, got %x", ErrChecksumMismatch, want, got)
	}
	return nil
}
