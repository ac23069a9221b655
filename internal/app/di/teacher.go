// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	teacheradapters "yoga_backend/internal/feature/teacher/adapters"
	"yoga_backend/internal/feature/teacher/usecase"
	"yoga_backend/internal/platform/cache"
)

// NewTeacherRepository creates a TeacherRepository implementation.
// If Redis is available, the database repository is wrapped with a read-through cache
// whose entries from a previous run are dropped first, since migrations may have reseeded teachers.
// Otherwise, it reads the database directly.
func NewTeacherRepository(ctx context.Context, rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.TeacherRepository {
	repo := teacheradapters.NewTeacherRepository(db)
	if rdb == nil {
		return repo
	}
	cached := cache.NewCachingTeacherRepository(rdb, ttl, repo, "teachers")
	if err := cached.Invalidate(ctx); err != nil {
		slog.Warn("teacher cache invalidation failed", "error", err)
	}
	return cached
}
