package error

import "errors"

// Storage domain errors.
var (
	// ErrFileNotFound is returned by a directory when the requested file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFileName is returned when a file name escapes the directory or is empty.
	ErrInvalidFileName = errors.New("invalid file name")
)
