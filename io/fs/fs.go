// Package fs provides a simple interface for a filesystem
package fs

import (
	"errors"
	"os"
	"time"
)

var (
	ErrExist    = os.ErrExist
	ErrNotExist = os.ErrNotExist
)

// FileInfo describes a file and is returned by Stat.
type FileInfo interface {
	// Name returns the full name of the file.
	Name() string

	// Size reports the size of the file in bytes.
	Size() int64

	// ModTime returns the time of last modification.
	ModTime() time.Time

	// IsDir returns whether the file represents a directory.
	IsDir() bool
}

type ReadFilesystem interface {
	// ReadFile reads the content of the file at the given path. Returns an
	// error that wraps ErrNotExist if there is no such file.
	ReadFile(path string) ([]byte, error)

	// Stat returns info about the file at path. If the file doesn't exist, an error
	// will be returned that wraps ErrNotExist.
	Stat(path string) (FileInfo, error)
}

type WriteFilesystem interface {
	// WriteFile adds a file to the filesystem. Returns the size of the data that has been
	// stored in bytes and whether the file is new. The size is negative if there was
	// an error adding the file and error is not nil.
	WriteFile(path string, data []byte) (int64, bool, error)

	// WriteFileSafe adds a file to the filesystem by first writing it to a tempfile and then
	// renaming it to the actual path. Returns the size of the data that has been
	// stored in bytes and whether the file is new. The size is negative if there was
	// an error adding the file and error is not nil. A failed write leaves a
	// previous version of the file untouched.
	WriteFileSafe(path string, data []byte) (int64, bool, error)

	// MkdirAll creates a directory named path, along with any necessary parents, and returns nil,
	// or else returns an error.
	MkdirAll(path string, perm os.FileMode) error

	// Remove removes a file at the given path from the filesystem. Returns the size of
	// the remove file in bytes. The size is negative if the file doesn't exist.
	Remove(path string) int64
}

// Filesystem is an interface that provides access to a filesystem.
type Filesystem interface {
	ReadFilesystem
	WriteFilesystem

	// Name returns the name of the filesystem.
	Name() string

	// Type returns the type of the filesystem, e.g. disk, mem
	Type() string
}

// IsNotExist reports whether err says that a file doesn't exist.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}
