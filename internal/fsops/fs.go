// Package fsops provides filesystem operations with safety guarantees.
//
// All filesystem mutations in structurex go through the FS interface. The
// implementation sits on a billy filesystem rooted at the project directory,
// so every path handed to it is relative to that root and cannot escape it.
//
// Key features:
//   - Atomic writes using temp file + rename
//   - Path validation for relative paths
//   - In-memory filesystem for tests and dry runs
package fsops

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"sync/atomic"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FS provides an abstraction for filesystem operations.
// Paths are slash-separated and relative to the project root.
type FS interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// AtomicWrite writes data to path atomically using temp file + rename.
	AtomicWrite(path string, data []byte, perm os.FileMode) error

	// ValidateRelPath validates a relative path for safety.
	ValidateRelPath(relPath string) error

	// Root returns the directory the filesystem is rooted at.
	Root() string
}

var tmpSeq atomic.Uint64

// BillyFS implements FS on top of a billy.Filesystem.
type BillyFS struct {
	fs billy.Filesystem
}

// New wraps an existing billy filesystem.
func New(fs billy.Filesystem) *BillyFS {
	return &BillyFS{fs: fs}
}

// NewRealFS creates an FS backed by the OS and rooted at root.
func NewRealFS(root string) *BillyFS {
	return New(osfs.New(root))
}

// NewMemFS creates an empty in-memory FS.
func NewMemFS() *BillyFS {
	return New(memfs.New())
}

// Root returns the directory the filesystem is rooted at.
func (b *BillyFS) Root() string {
	return b.fs.Root()
}

// ReadFile reads the entire contents of a file.
func (b *BillyFS) ReadFile(path string) ([]byte, error) {
	return util.ReadFile(b.fs, path)
}

// Exists checks if a path exists.
func (b *BillyFS) Exists(path string) (bool, error) {
	_, err := b.fs.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// MkdirAll creates a directory and all parent directories.
func (b *BillyFS) MkdirAll(path string, perm os.FileMode) error {
	return b.fs.MkdirAll(path, perm)
}

// Remove removes a file or empty directory.
func (b *BillyFS) Remove(path string) error {
	return b.fs.Remove(path)
}

// AtomicWrite writes data to path atomically using temp file + rename.
func (b *BillyFS) AtomicWrite(name string, data []byte, perm os.FileMode) error {
	dir := path.Dir(name)
	if dir != "." {
		if err := b.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
	}

	tmpPath := path.Join(dir, fmt.Sprintf(".structurex-tmp-%d-%d", os.Getpid(), tmpSeq.Add(1)))
	tmpFile, err := b.fs.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = b.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := b.fs.Rename(tmpPath, name); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	// Success - don't clean up temp file
	tmpFile = nil
	return nil
}

// ValidateRelPath validates a relative path for safety.
// Returns an error if the path is invalid or unsafe.
func (b *BillyFS) ValidateRelPath(relPath string) error {
	return ValidateRelPath(relPath)
}

// ValidateRelPath validates a slash-separated relative path.
func ValidateRelPath(relPath string) error {
	if strings.Contains(relPath, "\\") {
		return fmt.Errorf("invalid path: backslash not allowed in %q", relPath)
	}

	cleaned := path.Clean(relPath)

	// Reject empty or current directory
	if relPath == "" || cleaned == "." {
		return fmt.Errorf("invalid path: empty or current directory")
	}

	// Reject absolute paths
	if path.IsAbs(cleaned) {
		return fmt.Errorf("invalid path: must be relative, got absolute path %q", cleaned)
	}

	// Reject path traversal attempts
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("invalid path: path traversal not allowed in %q", cleaned)
	}

	return nil
}
