// Package handler はsessionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"yoga_backend/internal/feature/session/domain/entity"
	"yoga_backend/internal/feature/session/transport/http/dto"
	"yoga_backend/internal/feature/session/usecase"
	"yoga_backend/internal/platform/http/params"
	"yoga_backend/internal/shared/apierror"
)

// SessionUsecase はセッション操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SessionUsecase interface {
	FindAll(ctx context.Context) ([]entity.Session, error)
	FindByID(ctx context.Context, id uint) (*entity.Session, error)
	Create(ctx context.Context, in usecase.SessionInput) (*entity.Session, error)
	Update(ctx context.Context, id uint, in usecase.SessionInput) (*entity.Session, error)
	Delete(ctx context.Context, id uint) error
	Participate(ctx context.Context, id, userID uint) error
	NoLongerParticipate(ctx context.Context, id, userID uint) error
}

// SessionHandler はセッションのHTTPリクエストを処理します。
type SessionHandler struct {
	uc SessionUsecase
}

// NewSessionHandler はSessionHandlerの新しいインスタンスを生成します。
func NewSessionHandler(uc SessionUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// FindAll はセッション一覧を返します。
//
// エンドポイント例:
// GET /api/session
func (h *SessionHandler) FindAll(c *gin.Context) {
	sessions, err := h.uc.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(sessions))
}

// FindByID はIDでセッションを返します。
//
// エンドポイント例:
// GET /api/session/:id
func (h *SessionHandler) FindByID(c *gin.Context) {
	id, ok := bindID(c, "id")
	if !ok {
		return
	}
	s, err := h.uc.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*s))
}

// Create はセッションを作成します（管理者のみ）。
//
// エンドポイント例:
// POST /api/session
func (h *SessionHandler) Create(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	s, err := h.uc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*s))
}

// Update はセッションを更新します（管理者のみ）。参加者は変更されません。
//
// エンドポイント例:
// PUT /api/session/:id
func (h *SessionHandler) Update(c *gin.Context) {
	id, ok := bindID(c, "id")
	if !ok {
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}
	s, err := h.uc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*s))
}

// Delete はセッションを削除します（管理者のみ）。
//
// エンドポイント例:
// DELETE /api/session/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := bindID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Participate はユーザーをセッションに参加させます。
//
// エンドポイント例:
// POST /api/session/:id/participate/:userId
func (h *SessionHandler) Participate(c *gin.Context) {
	id, ok := bindID(c, "id")
	if !ok {
		return
	}
	userID, ok := bindID(c, "userId")
	if !ok {
		return
	}
	if err := h.uc.Participate(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	slog.Info("user joined session", "session_id", id, "user_id", userID)
	c.Status(http.StatusOK)
}

// NoLongerParticipate はユーザーをセッションから外します。
//
// エンドポイント例:
// DELETE /api/session/:id/participate/:userId
func (h *SessionHandler) NoLongerParticipate(c *gin.Context) {
	id, ok := bindID(c, "id")
	if !ok {
		return
	}
	userID, ok := bindID(c, "userId")
	if !ok {
		return
	}
	if err := h.uc.NoLongerParticipate(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	slog.Info("user left session", "session_id", id, "user_id", userID)
	c.Status(http.StatusOK)
}

func bindID(c *gin.Context, name string) (uint, bool) {
	id, err := params.ID(c, name)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Response{Error: err.Error()})
		return 0, false
	}
	return id, true
}

func bindInput(c *gin.Context) (usecase.SessionInput, bool) {
	var req dto.SessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("session validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, apierror.Response{Error: err.Error()})
		return usecase.SessionInput{}, false
	}
	return usecase.SessionInput{
		Name:        req.Name,
		Date:        req.Date,
		TeacherID:   req.TeacherID,
		Description: req.Description,
	}, true
}

// respondError はユースケースのエラーをHTTPステータスに変換します。
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound), errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, apierror.Response{Error: err.Error()})
	case errors.Is(err, usecase.ErrAlreadyParticipating),
		errors.Is(err, usecase.ErrNotParticipating),
		errors.Is(err, usecase.ErrTeacherNotFound):
		c.JSON(http.StatusBadRequest, apierror.Response{Error: err.Error()})
	default:
		slog.Error("session request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, apierror.Response{Error: "internal server error"})
	}
}
