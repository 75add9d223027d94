// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Directory is a small file-system-like capability holding named documents.
type Directory interface {
	// ReadFile returns the contents of the named file.
	// Returns domainerror.ErrFileNotFound when the file does not exist.
	ReadFile(ctx context.Context, name string) ([]byte, error)

	// WriteFile creates or replaces the named file.
	WriteFile(ctx context.Context, name string, data []byte) error
}

// UpdateFunc receives the current contents of a file, with found set to false
// when the file does not exist, and returns the contents to store. An error
// aborts the update and leaves the file untouched.
type UpdateFunc func(data []byte, found bool) ([]byte, error)

// TransactionalDirectory is a Directory that can read and rewrite a file as
// one step, even when other processes share the same storage.
type TransactionalDirectory interface {
	Directory

	// UpdateFile applies fn to the named file atomically.
	UpdateFile(ctx context.Context, name string, fn UpdateFunc) error
}
