// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"yoga_backend/internal/feature/auth/transport/http/dto"
	"yoga_backend/internal/feature/auth/usecase"
	"yoga_backend/internal/platform/metrics"
	"yoga_backend/internal/shared/errutil"
)

// tokenType はJwtResのtypeフィールドに入る固定値です。
const tokenType = "Bearer"

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録します。
	Register(ctx context.Context, in usecase.RegisterInput) error
	// Login はユーザーを認証し、成功時にトークンとプロフィールを返します。
	Login(ctx context.Context, email, password string) (*usecase.LoginResult, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メールアドレス重複時は400 "Error: Email is already taken!" を返却
// - 成功時は200 "User registered successfully!" を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "Error: " + err.Error()})
		return
	}

	err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	switch {
	case errors.Is(err, usecase.ErrEmailTaken):
		metrics.Registrations.WithLabelValues("email_taken").Inc()
		slog.Warn("register rejected: email taken", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "Error: Email is already taken!"})
		return
	case err != nil:
		metrics.Registrations.WithLabelValues("error").Inc()
		errutil.LogError(slog.Default(), "register failed", err)
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Error: registration failed"})
		return
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageRes{Message: "User registered successfully!"})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は理由を区別せず401を返却
// - 成功時はトークンとプロフィール付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "Error: " + err.Error()})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, usecase.ErrAuthenticationFailed):
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		// ユーザー列挙攻撃を防止するため、実際の理由を公開しない
		slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, dto.MessageRes{Message: "Error: Bad credentials"})
		return
	case err != nil:
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		errutil.LogError(slog.Default(), "login failed", err)
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Error: authentication unavailable"})
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.JwtRes{
		Token:     res.Token,
		Type:      tokenType,
		ID:        res.UserID,
		Username:  res.Email,
		FirstName: res.FirstName,
		LastName:  res.LastName,
		Admin:     res.Admin,
	})
}
