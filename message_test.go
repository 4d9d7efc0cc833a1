package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommitConventional tests conventional commit classification
func TestCommitConventional(t *testing.T) {
	t.Run("conventional message", func(t *testing.T) {
		commit := Commit{Message: "feat(loader): add copy detection"}

		cc, err := commit.Conventional()
		require.NoError(t, err)
		require.NotNil(t, cc)
		assert.Equal(t, "feat", cc.Type)
		assert.Equal(t, "add copy detection", cc.Description)
	})

	t.Run("breaking change marker", func(t *testing.T) {
		commit := Commit{Message: "fix!: drop the legacy diff format"}

		cc, err := commit.Conventional()
		require.NoError(t, err)
		require.NotNil(t, cc)
		assert.Equal(t, "fix", cc.Type)
		assert.True(t, cc.IsBreakingChange())
	})

	t.Run("non-conventional message fails", func(t *testing.T) {
		commit := Commit{Message: "just a plain commit message"}

		cc, err := commit.Conventional()
		require.Error(t, err)
		assert.Nil(t, cc)
	})
}
