package filesystem

import (
	"io"
	"io/fs"
)

// File is an open, writable file handle.
type File interface {
	io.Writer

	// Truncate changes the size of the file.
	Truncate(size int64) error

	// Sync commits written content to durable storage.
	Sync() error

	Close() error
}

// FileSystem provides an abstraction over file operations for testability
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	OpenFile(path string, flag int, perm fs.FileMode) (File, error)

	// Directory operations
	Mkdir(path string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	Getwd() (string, error)
}
