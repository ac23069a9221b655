// Package middleware はリクエストID付与とアクセスログのGinミドルウェアを提供します。
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID はリクエストIDを運ぶヘッダー名です。
const HeaderRequestID = "X-Request-ID"

const requestIDKey = "request_id"

// maxRequestIDLen を超えるクライアント指定のIDは採用しません。
const maxRequestIDLen = 64

// RequestID はリクエストIDを決定し、コンテキストとレスポンスヘッダーに設定します。
// クライアントが妥当なIDを送ってきた場合はそれを引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID はRequestIDミドルウェアが設定したIDを返します。
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// AccessLog は各リクエストをステータスコードと処理時間付きで1行ログ出力します。
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		slog.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", GetRequestID(c),
			"remote_addr", c.ClientIP(),
		)
	}
}
