// Package mock provides in-process stand-ins for the service's backing stores.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rachellllllllll/CreditCanvas-sub001/config"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/infra/db"
)

// Backends is an in-memory SQLite database plus a miniredis server,
// opened once and shared by every scenario.
type Backends struct {
	Database    *db.Database
	Redis       *redis.Client
	redisServer *miniredis.Miniredis
}

var (
	sharedOnce sync.Once
	shared     *Backends
)

// Shared returns the process-wide backends, opening and migrating them on first use.
func Shared() *Backends {
	sharedOnce.Do(func() {
		b, err := open()
		if err != nil {
			panic(err)
		}
		shared = b
	})
	return shared
}

func open() (*Backends, error) {
	ctx := context.Background()

	database, err := db.NewConnection(ctx, &config.DatabaseConfig{
		Driver: config.DatabaseDriverSQLite,
		URL:    "file::memory:?cache=shared",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		return nil, err
	}

	server, err := miniredis.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start miniredis: %w", err)
	}

	return &Backends{
		Database:    database,
		Redis:       redis.NewClient(&redis.Options{Addr: server.Addr()}),
		redisServer: server,
	}, nil
}

// Reset empties every table and flushes Redis.
func (b *Backends) Reset(ctx context.Context) error {
	if err := b.Database.Truncate(ctx); err != nil {
		return err
	}
	b.redisServer.FlushAll()
	return nil
}

// Count returns the number of rows in the named table.
func (b *Backends) Count(table string) (int64, error) {
	var count int64
	if err := b.Database.DB().Table(table).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RedisKeys returns the keys currently stored in Redis.
func (b *Backends) RedisKeys() []string {
	return b.redisServer.Keys()
}
