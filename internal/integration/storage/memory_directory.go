package storage

import (
	"context"
	"sync"

	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
)

// MemoryDirectory is an in-process directory. It is safe for concurrent use.
type MemoryDirectory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryDirectory creates an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		files: make(map[string][]byte),
	}
}

// ReadFile returns a copy of the named file.
func (d *MemoryDirectory) ReadFile(_ context.Context, name string) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	data, ok := d.files[name]
	if !ok {
		return nil, domainerror.ErrFileNotFound
	}
	return append([]byte(nil), data...), nil
}

// WriteFile stores a copy of data under name.
func (d *MemoryDirectory) WriteFile(_ context.Context, name string, data []byte) error {
	if name == "" {
		return domainerror.ErrInvalidFileName
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.files[name] = append([]byte(nil), data...)
	return nil
}
