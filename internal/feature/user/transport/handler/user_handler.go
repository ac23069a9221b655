// Package handler はuserフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authentity "yoga_backend/internal/feature/auth/domain/entity"
	"yoga_backend/internal/feature/user/transport/http/dto"
	"yoga_backend/internal/feature/user/usecase"
	"yoga_backend/internal/platform/http/params"
	jwtmw "yoga_backend/internal/platform/jwt"
	"yoga_backend/internal/shared/apierror"
)

// UserUsecase はアカウント操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type UserUsecase interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
	Delete(ctx context.Context, requester *jwtmw.Identity, id uint) error
}

// UserHandler はアカウントのHTTPリクエストを処理します。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// FindByID はIDでユーザーを返します。
//
// エンドポイント例:
// GET /api/user/:id
func (h *UserHandler) FindByID(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Response{Error: err.Error()})
		return
	}

	user, err := h.uc.FindByID(c.Request.Context(), id)
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, apierror.Response{Error: err.Error()})
		return
	case err != nil:
		slog.Error("find user failed", "user_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, apierror.Response{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*user))
}

// Delete は自分自身のアカウントを削除します。
// - 他人のアカウントを指定した場合は401
// - 存在しない場合は404
//
// エンドポイント例:
// DELETE /api/user/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Response{Error: err.Error()})
		return
	}

	requester, _ := jwtmw.IdentityFromContext(c.Request.Context())
	err = h.uc.Delete(c.Request.Context(), requester, id)
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, apierror.Response{Error: err.Error()})
	case errors.Is(err, usecase.ErrNotOwner):
		slog.Warn("account deletion denied", "target_id", id, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, apierror.Response{Error: err.Error()})
	case err != nil:
		slog.Error("delete user failed", "user_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, apierror.Response{Error: "internal server error"})
	default:
		c.Status(http.StatusOK)
	}
}
