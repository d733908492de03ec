package storage

import "io"

// Backend is the interface that wraps the basic file operations.
// Paths are relative to the storage root.
type Backend interface {
	// Name returns the name of the backend implementation.
	Name() string

	// Reader returns a ReadCloser of the file.
	Reader(path string) (io.ReadCloser, error)
	// Writer returns a WriteCloser of the file, creating parent
	// directories as needed.
	Writer(path string) (io.WriteCloser, error)

	// Exist returns true if the file exists.
	Exist(path string) bool

	// Remove deletes the given file.
	Remove(path string) error
	// Cleanup removes the empty directories left under the storage root.
	Cleanup() error
}
