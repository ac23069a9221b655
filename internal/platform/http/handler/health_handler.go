// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// checkTimeout は依存先1件あたりの疎通確認の上限時間です。
const checkTimeout = 2 * time.Second

// Check は依存先（DB、Redisなど）の疎通を確認します。
type Check func(ctx context.Context) error

// HealthHandler は /healthz を処理します。
type HealthHandler struct {
	checks map[string]Check
}

// NewHealthHandler は名前付きの依存先チェックを持つHealthHandlerを生成します。
// checksが空の場合は常に正常を返します。
func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
// 依存先のいずれかが応答しない場合は503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	results, healthy := h.run(c.Request.Context())
	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "unavailable"
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	body := gin.H{"status": overall}
	if len(results) > 0 {
		body["checks"] = results
	}
	c.JSON(status, body)
}

func (h *HealthHandler) run(ctx context.Context) (map[string]string, bool) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := h.checks[name](checkCtx)
		cancel()
		if err != nil {
			slog.Warn("health check failed", "dependency", name, "error", err)
			results[name] = "down"
			healthy = false
			continue
		}
		results[name] = "ok"
	}
	return results, healthy
}
