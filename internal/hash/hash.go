// Package hash provides content hashing for generated files.
//
// Structurex records a SHA-256 checksum for every file it writes so the
// manifest can tell which generated files were hand-edited since, and so the
// engine can report a write as unchanged when rendering produced the same
// bytes as what is already on disk.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/ConstCodeX/structurex/internal/fsops"
)

// Hasher provides an abstraction for content hashing.
type Hasher interface {
	// HashBytes computes the hash of data.
	HashBytes(data []byte) string

	// HashFile computes the hash of the file at the given path.
	HashFile(fs fsops.FS, path string) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashBytes returns the hex encoded SHA-256 of data.
func (h *SHA256Hasher) HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile computes the SHA-256 hash of the file at the given path.
func (h *SHA256Hasher) HashFile(fs fsops.FS, path string) (string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return h.HashBytes(data), nil
}
