package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDiffOptionsValidate tests diff option validation
func TestDiffOptionsValidate(t *testing.T) {
	tests := []struct {
		name        string
		opts        DiffOptions
		expectError bool
	}{
		{name: "zero value"},
		{
			name: "full options",
			opts: DiffOptions{
				ContextLines:  5,
				DetectRenames: true,
				DetectCopies:  true,
				RenameScore:   75,
				RenameLimit:   200,
			},
		},
		{
			name:        "negative context lines",
			opts:        DiffOptions{ContextLines: -1},
			expectError: true,
		},
		{
			name:        "rename score over 100",
			opts:        DiffOptions{RenameScore: 101},
			expectError: true,
		},
		{
			name:        "negative rename limit",
			opts:        DiffOptions{RenameLimit: -1},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidRef)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestDiffOptionsDefaults tests defaulting of unset fields
func TestDiffOptionsDefaults(t *testing.T) {
	opts := DiffOptions{}
	opts.applyDefaults()

	assert.Equal(t, DefaultContextLines, opts.ContextLines)
	assert.Equal(t, DefaultRenameScore, opts.RenameScore)
	assert.False(t, opts.DetectRenames)

	explicit := DiffOptions{ContextLines: 7, RenameScore: 90}
	explicit.applyDefaults()
	assert.Equal(t, 7, explicit.ContextLines)
	assert.Equal(t, 90, explicit.RenameScore)
}

// TestChangeKindString tests the ChangeKind string representation
func TestChangeKindString(t *testing.T) {
	tests := []struct {
		kind ChangeKind
		want string
	}{
		{Added, "added"},
		{Deleted, "deleted"},
		{Modified, "modified"},
		{Renamed, "renamed"},
		{Copied, "copied"},
		{ChangeKind(42), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

// TestFileChangePath tests post-change path selection
func TestFileChangePath(t *testing.T) {
	assert.Equal(t, "new.txt", FileChange{From: "old.txt", To: "new.txt"}.Path())
	assert.Equal(t, "added.txt", FileChange{To: "added.txt"}.Path())
	assert.Equal(t, "gone.txt", FileChange{From: "gone.txt", Kind: Deleted}.Path())
}
