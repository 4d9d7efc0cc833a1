package git

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSentinelErrors tests that the stable error taxonomy survives wrapping
func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrNotRepository,
		ErrConfigInvalid,
		ErrRevisionNotFound,
		ErrObjectNotFound,
		ErrDiffFailed,
		ErrInvalidRef,
	}

	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			wrapped := WrapError(sentinel, "operation context")
			assert.ErrorIs(t, wrapped, sentinel)

			doubleWrapped := WrapErrorf(wrapped, "outer context for %q", "value")
			assert.ErrorIs(t, doubleWrapped, sentinel)
		})
	}
}

// TestWrapError tests the context wrapping helper
func TestWrapError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, WrapError(nil, "context"))
	})

	t.Run("message prefixes the cause", func(t *testing.T) {
		cause := errors.New("underlying failure")
		err := WrapError(cause, "load-commit-diff")
		require.Error(t, err)
		assert.Equal(t, "load-commit-diff: underlying failure", err.Error())
		assert.ErrorIs(t, err, cause)
	})
}

// TestWrapErrorf tests the formatted context wrapping helper
func TestWrapErrorf(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, WrapErrorf(nil, "context %d", 1))
	})

	t.Run("format arguments are applied", func(t *testing.T) {
		err := WrapErrorf(ErrRevisionNotFound, "could not resolve revision %q", "abc123")
		require.Error(t, err)
		assert.Equal(t, `could not resolve revision "abc123": revision not found`, err.Error())
	})
}
