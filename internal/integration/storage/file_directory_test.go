package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
)

func TestFileDirectory(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the root and round trips files", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "nested", "data")
		dir, err := NewFileDirectory(root)
		require.NoError(t, err)

		require.NoError(t, dir.WriteFile(ctx, "rules.json", []byte(`[1]`)))
		require.NoError(t, dir.WriteFile(ctx, "rules.json", []byte(`[2]`)))

		data, err := dir.ReadFile(ctx, "rules.json")
		require.NoError(t, err)
		assert.Equal(t, `[2]`, string(data))

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary files should be cleaned up")
	})

	t.Run("reports missing files", func(t *testing.T) {
		dir, err := NewFileDirectory(t.TempDir())
		require.NoError(t, err)

		_, err = dir.ReadFile(ctx, "missing.json")
		assert.ErrorIs(t, err, domainerror.ErrFileNotFound)
	})

	t.Run("rejects names outside the root", func(t *testing.T) {
		dir, err := NewFileDirectory(t.TempDir())
		require.NoError(t, err)

		for _, name := range []string{"", ".", "../escape.json", "sub/file.json", "/etc/passwd"} {
			assert.ErrorIs(t, dir.WriteFile(ctx, name, nil), domainerror.ErrInvalidFileName, name)
			_, err := dir.ReadFile(ctx, name)
			assert.ErrorIs(t, err, domainerror.ErrInvalidFileName, name)
		}
	})

	t.Run("honours a cancelled context", func(t *testing.T) {
		dir, err := NewFileDirectory(t.TempDir())
		require.NoError(t, err)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		assert.ErrorIs(t, dir.WriteFile(cancelled, "rules.json", nil), context.Canceled)
	})
}

func TestMemoryDirectory(t *testing.T) {
	ctx := context.Background()
	dir := NewMemoryDirectory()

	_, err := dir.ReadFile(ctx, "rules.json")
	assert.ErrorIs(t, err, domainerror.ErrFileNotFound)

	data := []byte("abc")
	require.NoError(t, dir.WriteFile(ctx, "rules.json", data))
	data[0] = 'x'

	got, err := dir.ReadFile(ctx, "rules.json")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	assert.ErrorIs(t, dir.WriteFile(ctx, "", nil), domainerror.ErrInvalidFileName)
}
