// Package storage implements directory adapters over local storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// fileDirectory implements the adapter.Directory interface on a local folder.
type fileDirectory struct {
	root string
}

// NewFileDirectory creates a directory rooted at the given path, creating it if needed.
func NewFileDirectory(root string) (adapter.Directory, error) {
	if err := os.MkdirAll(root, dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &fileDirectory{root: root}, nil
}

// ReadFile returns the contents of the named file.
func (d *fileDirectory) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := d.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domainerror.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// WriteFile replaces the named file through a temporary file and rename.
func (d *fileDirectory) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := d.resolve(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.root, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, filePermissions); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// resolve maps a file name to a path inside the root.
func (d *fileDirectory) resolve(name string) (string, error) {
	clean := filepath.Clean(name)
	if name == "" || clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") || strings.ContainsRune(clean, filepath.Separator) {
		return "", domainerror.ErrInvalidFileName
	}
	return filepath.Join(d.root, clean), nil
}
