// Package handler はteacherフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"yoga_backend/internal/feature/teacher/domain/entity"
	"yoga_backend/internal/feature/teacher/transport/http/dto"
	"yoga_backend/internal/feature/teacher/usecase"
	"yoga_backend/internal/platform/http/params"
	"yoga_backend/internal/shared/apierror"
)

// TeacherUsecase は講師参照のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TeacherUsecase interface {
	FindAll(ctx context.Context) ([]entity.Teacher, error)
	FindByID(ctx context.Context, id uint) (*entity.Teacher, error)
}

// TeacherHandler は講師のHTTPリクエストを処理します。
type TeacherHandler struct {
	uc TeacherUsecase
}

// NewTeacherHandler はTeacherHandlerの新しいインスタンスを生成します。
func NewTeacherHandler(uc TeacherUsecase) *TeacherHandler {
	return &TeacherHandler{uc: uc}
}

// FindAll は講師一覧を返します。
//
// エンドポイント例:
// GET /api/teacher
func (h *TeacherHandler) FindAll(c *gin.Context) {
	teachers, err := h.uc.FindAll(c.Request.Context())
	if err != nil {
		slog.Error("list teachers failed", "error", err)
		c.JSON(http.StatusInternalServerError, apierror.Response{Error: "failed to load teachers"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(teachers))
}

// FindByID はIDで講師を返します。
// - IDが数値でない場合は400
// - 存在しない場合は404
//
// エンドポイント例:
// GET /api/teacher/:id
func (h *TeacherHandler) FindByID(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Response{Error: err.Error()})
		return
	}

	teacher, err := h.uc.FindByID(c.Request.Context(), id)
	switch {
	case errors.Is(err, usecase.ErrTeacherNotFound):
		c.JSON(http.StatusNotFound, apierror.Response{Error: err.Error()})
		return
	case err != nil:
		slog.Error("find teacher failed", "teacher_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, apierror.Response{Error: "failed to load teacher"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*teacher))
}
