// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"yoga_backend/internal/feature/teacher/domain/entity"
	"yoga_backend/internal/feature/teacher/usecase"
)

// CachingTeacherRepository decorates a TeacherRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingTeacherRepository struct {
	inner     usecase.TeacherRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TeacherRepository = (*CachingTeacherRepository)(nil)

// NewCachingTeacherRepository decorates a TeacherRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "teachers".
func NewCachingTeacherRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TeacherRepository, namespace string) *CachingTeacherRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "teachers"
	}
	return &CachingTeacherRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindAll returns every teacher, checking the cache first.
func (c *CachingTeacherRepository) FindAll(ctx context.Context) ([]entity.Teacher, error) {
	if c.rdb == nil {
		return c.inner.FindAll(ctx)
	}

	key := c.listKey()
	var out []entity.Teacher
	if c.load(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// FindByID returns one teacher, checking the cache first. Misses are not cached.
func (c *CachingTeacherRepository) FindByID(ctx context.Context, id uint) (*entity.Teacher, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.itemKey(id)
	var cached entity.Teacher
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	t, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, t)
	return t, nil
}

// Invalidate drops every cached teacher entry in this namespace.
func (c *CachingTeacherRepository) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, safe(c.namespace)+":*")
}

// load reads key into dst. It reports false on a miss, a Redis error or a corrupted entry.
func (c *CachingTeacherRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("teacher cache read failed", "key", key, "error", err)
		}
		return false
	}
	if len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// store writes v under key (best effort).
func (c *CachingTeacherRepository) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		slog.Warn("teacher cache write failed", "key", key, "error", err)
	}
}

func (c *CachingTeacherRepository) listKey() string {
	return fmt.Sprintf("%s:all", safe(c.namespace))
}

func (c *CachingTeacherRepository) itemKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", safe(c.namespace), id)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingTeacherRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
