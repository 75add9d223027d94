// Package cache implements caching decorators backed by Redis.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
)

const (
	// DefaultTTL is how long a cached file stays valid.
	DefaultTTL = 5 * time.Minute

	keyPrefix     = "directory:file:"
	versionPrefix = "directory:version:"
)

// redisDirectory caches reads of an underlying directory in Redis.
// Cache failures never fail a read or write; the underlying directory is authoritative.
//
// Cached copies are keyed by a per-file version that every write increments,
// so a slow read that fills the cache after a write lands on a key nobody
// reads anymore.
type redisDirectory struct {
	next   adapter.Directory
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDirectory wraps a directory with a Redis read-through cache.
func NewRedisDirectory(next adapter.Directory, client *redis.Client, ttl time.Duration) adapter.TransactionalDirectory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisDirectory{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

// ReadFile serves the file from Redis when cached, otherwise from the underlying directory.
func (d *redisDirectory) ReadFile(ctx context.Context, name string) ([]byte, error) {
	key, cacheable := d.cacheKey(ctx, name)
	if cacheable {
		data, err := d.client.Get(ctx, key).Bytes()
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Directory cache read failed", "file", name, "error", err)
		}
	}

	data, err := d.next.ReadFile(ctx, name)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := d.client.Set(ctx, key, data, d.ttl).Err(); err != nil {
			slog.Warn("Directory cache fill failed", "file", name, "error", err)
		}
	}
	return data, nil
}

// WriteFile writes through to the underlying directory and retires the cached copy.
func (d *redisDirectory) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := d.next.WriteFile(ctx, name, data); err != nil {
		return err
	}
	d.invalidate(ctx, name)
	return nil
}

// UpdateFile updates the file in the underlying directory, never from the cache,
// and retires the cached copy. The update is atomic only when the underlying
// directory is transactional.
func (d *redisDirectory) UpdateFile(ctx context.Context, name string, fn adapter.UpdateFunc) error {
	if tx, ok := d.next.(adapter.TransactionalDirectory); ok {
		if err := tx.UpdateFile(ctx, name, fn); err != nil {
			return err
		}
		d.invalidate(ctx, name)
		return nil
	}

	found := true
	current, err := d.next.ReadFile(ctx, name)
	switch {
	case errors.Is(err, domainerror.ErrFileNotFound):
		found = false
	case err != nil:
		return err
	}

	data, err := fn(current, found)
	if err != nil {
		return err
	}
	return d.WriteFile(ctx, name, data)
}

// cacheKey returns the key of the current cached copy. Without a readable
// version the cache is bypassed.
func (d *redisDirectory) cacheKey(ctx context.Context, name string) (string, bool) {
	version, err := d.client.Get(ctx, versionPrefix+name).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("Directory cache version read failed", "file", name, "error", err)
		return "", false
	}
	return fileKey(name, version), true
}

// invalidate moves the file to a new version so earlier cached copies are never served.
func (d *redisDirectory) invalidate(ctx context.Context, name string) {
	if err := d.client.Incr(ctx, versionPrefix+name).Err(); err != nil {
		slog.Warn("Directory cache invalidation failed", "file", name, "error", err)
	}
}

func fileKey(name string, version int64) string {
	return keyPrefix + name + ":" + strconv.FormatInt(version, 10)
}

// NewClient creates a Redis client from a redis:// URL and checks connectivity.
func NewClient(ctx context.Context, url, password string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if password != "" {
		opts.Password = password
	}
	if db > 0 {
		opts.DB = db
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
