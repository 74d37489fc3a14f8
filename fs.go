package lodb

import (
	"io"
	"io/fs"
	"os"
)

// FS is the filesystem primitive the store runs on. The default
// implementation wraps the os package; tests substitute fakes to inject
// faults. Missing files must be reported with an error matching
// fs.ErrNotExist.
type FS interface {
	// MkdirAll creates a directory and any missing parents. A
	// pre-existing directory is not an error.
	MkdirAll(path string) error

	// Open opens a file for reading.
	Open(name string) (File, error)

	// Create opens a file for writing, truncating any existing content.
	Create(name string) (File, error)

	// Remove deletes a file.
	Remove(name string) error

	// ReadDir lists a directory's entries.
	ReadDir(name string) ([]fs.DirEntry, error)
}

// File is a readable or writable file handle. Sync flushes written bytes
// to the underlying medium.
type File interface {
	io.Reader
	io.Writer
	io.Closer
	Sync() error
}

// osFS is the production FS backed by the host filesystem.
type osFS struct{}

func (osFS) MkdirAll(path string) error { return os.MkdirAll(path, 0o755) }

func (osFS) Open(name string) (File, error) { return os.Open(name) }

func (osFS) Create(name string) (File, error) { return os.Create(name) }

func (osFS) Remove(name string) error { return os.Remove(name) }

func (osFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
