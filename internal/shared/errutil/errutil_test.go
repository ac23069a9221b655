package errutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func TestLogError_OopsError(t *testing.T) {
	logger, buf := captureLogger()
	err := oops.Code("CREDENTIAL_SYSTEM").With("operation", "hash").Wrap(errors.New("bcrypt: cost out of range"))

	LogError(logger, "register failed", err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "register failed", entry["msg"])
	assert.Equal(t, "CREDENTIAL_SYSTEM", entry["code"])
	assert.Contains(t, entry["error"], "bcrypt: cost out of range")
	ctx, ok := entry["context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hash", ctx["operation"])
}

func TestLogError_PlainError(t *testing.T) {
	logger, buf := captureLogger()

	LogError(logger, "login failed", errors.New("connection reset"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "connection reset", entry["error"])
	assert.NotContains(t, entry, "code")
}
