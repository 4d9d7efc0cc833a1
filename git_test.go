package git

import (
	"context"
	"path/filepath"
	"testing"

	billyfs "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOptionsValidate tests option validation and defaulting
func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		expectError bool
	}{
		{
			name: "valid options",
			opts: Options{FS: billyfs.NewInMemoryFS()},
		},
		{
			name:        "nil filesystem",
			opts:        Options{},
			expectError: true,
		},
		{
			name:        "negative cache size",
			opts:        Options{FS: billyfs.NewInMemoryFS(), StorerCacheSize: -1},
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

// TestInit tests repository initialization
func TestInit(t *testing.T) {
	t.Run("non-bare repository", func(t *testing.T) {
		tr := setupTestRepo(t, false)
		assert.NotNil(t, tr.repo.repo)
		assert.NotNil(t, tr.repo.worktree)
	})

	t.Run("bare repository", func(t *testing.T) {
		tr := setupTestRepo(t, true)
		assert.NotNil(t, tr.repo.repo)
		assert.Nil(t, tr.repo.worktree)
	})

	t.Run("defaults applied", func(t *testing.T) {
		opts := Options{FS: billyfs.NewInMemoryFS()}
		repo, err := Init(context.Background(), &opts)
		require.NoError(t, err)
		assert.Equal(t, DefaultWorkdir, repo.options.Workdir)
		assert.Equal(t, DefaultStorerCacheSize, repo.options.StorerCacheSize)
	})
}

// TestOpen tests opening repositories at exact paths
func TestOpen(t *testing.T) {
	t.Run("open existing repository", func(t *testing.T) {
		tr := setupTestRepo(t, false)
		tr.writeFile(t, "test.txt", "content")
		tr.commit(t, "initial", "test.txt")

		reopened, err := Open(tr.ctx, &Options{FS: tr.fs, Workdir: "."})
		require.NoError(t, err)
		require.NotNil(t, reopened)
		assert.Equal(t, ".", reopened.Path())
	})

	t.Run("open nonexistent path fails with path in message", func(t *testing.T) {
		repo, err := Open(context.Background(), &Options{
			FS:      billyfs.NewInMemoryFS(),
			Workdir: "does/not/exist",
		})
		require.Error(t, err)
		assert.Nil(t, repo)
		assert.ErrorIs(t, err, ErrNotRepository)
		assert.Contains(t, err.Error(), "does/not/exist")
	})
}

// TestOpenFromEnv tests repository discovery
func TestOpenFromEnv(t *testing.T) {
	t.Run("discovers repository from nested workdir", func(t *testing.T) {
		tr := setupTestRepo(t, false)
		tr.writeFile(t, "test.txt", "content")
		tr.commit(t, "initial", "test.txt")

		require.NoError(t, tr.fs.MkdirAll("sub/deep", 0o755))
		t.Setenv(GitDirEnv, "")

		repo, err := OpenFromEnv(tr.ctx, &Options{FS: tr.fs, Workdir: "sub/deep"})
		require.NoError(t, err)
		require.NotNil(t, repo)
		assert.Equal(t, ".", repo.Path())
	})

	t.Run("no repository anywhere fails", func(t *testing.T) {
		t.Setenv(GitDirEnv, "")

		repo, err := OpenFromEnv(context.Background(), &Options{
			FS:      billyfs.NewInMemoryFS(),
			Workdir: "sub/deep",
		})
		require.Error(t, err)
		assert.Nil(t, repo)
		assert.ErrorIs(t, err, ErrNotRepository)
		assert.Contains(t, err.Error(), "sub/deep")
	})

	t.Run("GIT_DIR override", func(t *testing.T) {
		tmp := t.TempDir()

		_, err := Init(context.Background(), &Options{FS: billyfs.NewOSFS(tmp)})
		require.NoError(t, err)

		gitDir := filepath.Join(tmp, ".git")
		t.Setenv(GitDirEnv, gitDir)

		repo, err := OpenFromEnv(context.Background(), &Options{FS: billyfs.NewInMemoryFS()})
		require.NoError(t, err)
		require.NotNil(t, repo)
		assert.Equal(t, gitDir, repo.Path())
	})

	t.Run("GIT_DIR pointing nowhere fails", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "does-not-exist")
		t.Setenv(GitDirEnv, missing)

		repo, err := OpenFromEnv(context.Background(), &Options{FS: billyfs.NewInMemoryFS()})
		require.Error(t, err)
		assert.Nil(t, repo)
		assert.ErrorIs(t, err, ErrNotRepository)
		assert.Contains(t, err.Error(), missing)
	})
}

// TestClose tests releasing the backend connection
func TestClose(t *testing.T) {
	tr := setupTestRepo(t, false)
	require.NoError(t, tr.repo.Close())
}
