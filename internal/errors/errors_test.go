package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("Nil error", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("Plain error gets code", func(t *testing.T) {
		base := fmt.Errorf("disk on fire")
		err := Wrap(base, CodeStoreReadError, "failed to read store")
		require.Error(t, err)
		assert.Equal(t, CodeStoreReadError, GetCode(err))
		assert.True(t, stderrors.Is(err, base))
		assert.Contains(t, err.Error(), "failed to read store")
	})

	t.Run("AppError keeps innermost code", func(t *testing.T) {
		inner := New(CodeHCLParseError, "bad block")
		err := Wrap(inner, CodeStoreReadError, "outer")
		assert.Equal(t, CodeHCLParseError, GetCode(err))
		assert.True(t, Is(err, CodeHCLParseError))
	})
}

func TestGetUserFacingMessage(t *testing.T) {
	t.Run("Direct user facing", func(t *testing.T) {
		err := NewUserFacing(CodeConfigValidation, "bad config", "fix it")
		msg, hint, ok := GetUserFacingMessage(err)
		assert.True(t, ok)
		assert.Equal(t, "bad config", msg)
		assert.Equal(t, "fix it", hint)
	})

	t.Run("Nested user facing", func(t *testing.T) {
		inner := NewUserFacing(CodeStoreParseError, "store is empty", "")
		outer := fmt.Errorf("loading: %w", inner)
		msg, _, ok := GetUserFacingMessage(outer)
		assert.True(t, ok)
		assert.Equal(t, "store is empty", msg)
	})

	t.Run("No user facing error", func(t *testing.T) {
		msg, hint, ok := GetUserFacingMessage(New(CodeInternal, "boom"))
		assert.False(t, ok)
		assert.Equal(t, "An unexpected error occurred.", msg)
		assert.Equal(t, "Check logs for more details.", hint)
	})
}

func TestWrapUserFacing(t *testing.T) {
	inner := New(CodeMappingError, "mapping broke")
	err := WrapUserFacing(inner, CodeStoreInvalid, "store could not be mapped", "check the file")
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeStoreInvalid, appErr.Code)
	assert.True(t, appErr.IsUserFacing)
	assert.Equal(t, inner.StackTrace, appErr.StackTrace)
	assert.Contains(t, appErr.InternalDetails, "mapping broke")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitConfig, ExitCode(NewUserFacing(CodeConfigValidation, "bad", "")))
	assert.Equal(t, ExitStore, ExitCode(Wrap(New(CodeHCLParseError, "syntax"), CodeStoreReadError, "load")))
	assert.Equal(t, ExitPlatform, ExitCode(New(CodePlatformAuthError, "denied")))
	assert.Equal(t, ExitFailure, ExitCode(New(CodeReportError, "write")))
	assert.Equal(t, ExitFailure, ExitCode(stderrors.New("plain")))
}
