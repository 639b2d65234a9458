package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/olusolaa/infra-board/internal/errors"
)

func TestNewLoggerTo(t *testing.T) {
	ctx := context.Background()

	t.Run("Text format respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLoggerTo(Config{Level: LevelWarn, Format: FormatText}, &buf)
		require.NoError(t, err)

		logger.Infof(ctx, "hidden %d", 1)
		logger.Warnf(ctx, "visible %d", 2)

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "visible 2")
	})

	t.Run("JSON format carries error code and fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLoggerTo(Config{Level: LevelDebug, Format: FormatJSON}, &buf)
		require.NoError(t, err)

		logger.WithFields(map[string]any{"component": "engine"}).
			Errorf(ctx, apperrors.New(apperrors.CodeStoreReadError, "no file"), "load failed")

		out := buf.String()
		assert.Contains(t, out, `"component":"engine"`)
		assert.Contains(t, out, `"error_code":"STORE_READ_ERROR"`)
		assert.Contains(t, out, `"msg":"load failed"`)
	})

	t.Run("Unknown format", func(t *testing.T) {
		_, err := NewLoggerTo(Config{Format: "xml"}, &bytes.Buffer{})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeConfigValidation))
	})

	t.Run("Nil writer", func(t *testing.T) {
		_, err := NewLoggerTo(DefaultConfig(), nil)
		require.Error(t, err)
	})
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	assert.NotPanics(t, func() {
		logger.Errorf(context.Background(), nil, "nothing %s", "here")
		logger.WithFields(map[string]any{"a": 1}).Infof(nil, "still nothing")
	})
}
