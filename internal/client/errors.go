package client

import "github.com/pkg/errors"

var (
	// ErrFileNotFound is returned when a local path is missing or not a
	// regular file. The whole batch fails before any network activity.
	ErrFileNotFound = errors.New("file path does not exist")

	// ErrUploadFailed is returned on a network failure or a non-success
	// status. The server's short message is attached when available.
	ErrUploadFailed = errors.New("upload failed")

	// ErrPathCountMismatch is returned when the server's path list does
	// not match the number of submitted files. Kept distinct from
	// ErrUploadFailed so it is not confused with a transport failure.
	ErrPathCountMismatch = errors.New("mismatched number of uploaded paths")
)
