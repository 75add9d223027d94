package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rachellllllllll/CreditCanvas-sub001/config"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/persistence/model"
)

func TestDatabase(t *testing.T) {
	ctx := context.Background()

	t.Run("migrates and truncates the service tables", func(t *testing.T) {
		database, err := NewConnection(ctx, &config.DatabaseConfig{
			Driver: config.DatabaseDriverSQLite,
			URL:    ":memory:",
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = database.Close() })

		require.NoError(t, database.Migrate(ctx))
		for _, m := range Models() {
			assert.True(t, database.DB().Migrator().HasTable(m), "%T", m)
		}

		require.NoError(t, database.DB().Create(&model.DirectoryDocumentModel{
			Name:    "rules.json",
			Content: []byte(`[]`),
		}).Error)
		require.NoError(t, database.Truncate(ctx))

		var count int64
		require.NoError(t, database.DB().Model(&model.DirectoryDocumentModel{}).Count(&count).Error)
		assert.Zero(t, count)
		assert.NoError(t, database.Ping(ctx))
	})

	t.Run("rejects unknown drivers", func(t *testing.T) {
		_, err := NewConnection(ctx, &config.DatabaseConfig{Driver: "oracle"})

		assert.ErrorContains(t, err, "unsupported database driver")
	})
}
