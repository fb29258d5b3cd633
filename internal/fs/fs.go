// Package fs provides the filesystem abstraction the record store and the
// bootstrap code are written against.
//
// The main types are:
//   - [FS]: interface for the filesystem operations td needs
//   - [Real]: production implementation using the [os] package
//
// Example usage:
//
//	fsys := fs.NewReal()
//	entries, err := fsys.ReadDir("tasks")
//	if err != nil {
//	    return err
//	}
package fs

import (
	"os"
)

// FS defines the filesystem operations used by td.
//
// All methods mirror their [os] package equivalents and keep the same error
// semantics, so callers can use errors.Is with [io/fs.ErrNotExist] and
// [io/fs.ErrExist].
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so a crash never leaves a half-written record.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// ReadDir reads a directory and returns its entries sorted by name.
	// See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)
}
