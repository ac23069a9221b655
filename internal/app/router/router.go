// Package router はHTTPルーティングテーブルを定義します。
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "yoga_backend/internal/feature/auth/transport/handler"
	sessionhandler "yoga_backend/internal/feature/session/transport/handler"
	teacherhandler "yoga_backend/internal/feature/teacher/transport/handler"
	userhandler "yoga_backend/internal/feature/user/transport/handler"
	platformhandler "yoga_backend/internal/platform/http/handler"
	"yoga_backend/internal/platform/http/middleware"
	jwtmw "yoga_backend/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	Auth    *authhandler.AuthHandler
	Session *sessionhandler.SessionHandler
	Teacher *teacherhandler.TeacherHandler
	User    *userhandler.UserHandler
	Health  *platformhandler.HealthHandler
}

// Options はルーター全体の設定です。
type Options struct {
	// AllowedOrigins が空の場合、CORSミドルウェアは登録しません。
	AllowedOrigins []string
	// Metrics は /metrics で公開するハンドラーです。nilの場合は登録しません。
	Metrics http.Handler
}

// NewRouter はミドルウェアとルートを登録したGinエンジンを生成します。
func NewRouter(auth *jwtmw.Authenticator, h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	// トークンがあればIdentityを付与する。ここでは拒否しない
	r.Use(auth.Authenticate())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	api := r.Group("/api")

	public := api.Group("/auth")
	{
		// ログイン（JWT 発行）
		public.POST("/login", h.Auth.Login)
		// 新規ユーザー登録
		public.POST("/register", h.Auth.Register)
	}

	// 認証必須のルート
	protected := api.Group("", jwtmw.RequireAuth())
	{
		protected.GET("/session", h.Session.FindAll)
		protected.GET("/session/:id", h.Session.FindByID)
		// 作成・更新・削除は管理者のみ
		protected.POST("/session", jwtmw.RequireAdmin(), h.Session.Create)
		protected.PUT("/session/:id", jwtmw.RequireAdmin(), h.Session.Update)
		protected.DELETE("/session/:id", jwtmw.RequireAdmin(), h.Session.Delete)
		protected.POST("/session/:id/participate/:userId", h.Session.Participate)
		protected.DELETE("/session/:id/participate/:userId", h.Session.NoLongerParticipate)

		protected.GET("/teacher", h.Teacher.FindAll)
		protected.GET("/teacher/:id", h.Teacher.FindByID)

		protected.GET("/user/:id", h.User.FindByID)
		protected.DELETE("/user/:id", h.User.Delete)
	}

	return r
}
