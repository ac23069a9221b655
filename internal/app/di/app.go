package di

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"yoga_backend/internal/app/router"
	authadapters "yoga_backend/internal/feature/auth/adapters"
	authhandler "yoga_backend/internal/feature/auth/transport/handler"
	authusecase "yoga_backend/internal/feature/auth/usecase"
	sessionadapters "yoga_backend/internal/feature/session/adapters"
	sessionhandler "yoga_backend/internal/feature/session/transport/handler"
	sessionusecase "yoga_backend/internal/feature/session/usecase"
	teacherhandler "yoga_backend/internal/feature/teacher/transport/handler"
	teacherusecase "yoga_backend/internal/feature/teacher/usecase"
	userhandler "yoga_backend/internal/feature/user/transport/handler"
	userusecase "yoga_backend/internal/feature/user/usecase"
	"yoga_backend/internal/platform/config"
	platformhandler "yoga_backend/internal/platform/http/handler"
	jwtmw "yoga_backend/internal/platform/jwt"
	"yoga_backend/internal/platform/metrics"
	"yoga_backend/internal/platform/password"
)

// passwordCost is the bcrypt cost used for stored password hashes.
var passwordCost = bcrypt.DefaultCost

// NewEngine wires repositories, usecases and handlers into the HTTP router.
// rdb may be nil, in which case teachers are read without cache.
func NewEngine(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	// Repository
	userRepo := authadapters.NewUserRepository(db)
	sessionRepo := sessionadapters.NewSessionRepository(db)
	teacherRepo := NewTeacherRepository(ctx, rdb, db, cfg.Cache.TeacherTTL)

	// Platform
	tokens := jwtmw.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := password.NewBcryptHasher(passwordCost)
	authenticator := jwtmw.NewAuthenticator(tokens, authusecase.NewIdentityResolver(userRepo))

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, tokens)
	teacherUC := teacherusecase.NewTeacherUsecase(teacherRepo)
	sessionUC := sessionusecase.NewSessionUsecase(sessionRepo, userRepo, teacherRepo)
	userUC := userusecase.NewUserUsecase(userRepo)

	// Handler
	handlers := router.Handlers{
		Auth:    authhandler.NewAuthHandler(authUC),
		Session: sessionhandler.NewSessionHandler(sessionUC),
		Teacher: teacherhandler.NewTeacherHandler(teacherUC),
		User:    userhandler.NewUserHandler(userUC),
		Health:  platformhandler.NewHealthHandler(healthChecks(db, rdb)),
	}

	return router.NewRouter(authenticator, handlers, router.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Metrics:        metricsHandler(),
	})
}

func healthChecks(db *gorm.DB, rdb *redis.Client) map[string]platformhandler.Check {
	checks := map[string]platformhandler.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}

func metricsHandler() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterCollectors(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
