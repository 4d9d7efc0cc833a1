package git

import (
	"context"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/require"
)

// testRepo is a helper struct that contains a test repository and its filesystem
type testRepo struct {
	repo *Repo
	fs   fs.Filesystem
	ctx  context.Context
}

// testSignature returns a fixed signature so commit hashes stay deterministic
func testSignature() *object.Signature {
	return &object.Signature{
		Name:  "Test",
		Email: "test@example.com",
		When:  time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// setupTestRepo creates a new test repository with an in-memory filesystem
func setupTestRepo(t *testing.T, bare bool) *testRepo {
	t.Helper()

	ctx := context.Background()
	memFS := fsb.NewInMemoryFS()

	opts := Options{
		FS:      memFS,
		Bare:    bare,
		Workdir: ".",
	}

	repo, err := Init(ctx, &opts)
	require.NoError(t, err, "failed to initialize test repository")
	require.NotNil(t, repo, "repository should not be nil")

	return &testRepo{
		repo: repo,
		fs:   memFS,
		ctx:  ctx,
	}
}

// writeFile writes content to a file in the test worktree
func (tr *testRepo) writeFile(t *testing.T, name, content string) {
	t.Helper()

	err := tr.fs.WriteFile(name, []byte(content), 0o644)
	require.NoError(t, err, "failed to write %s", name)
}

// removeFile removes a file from the worktree and the index
func (tr *testRepo) removeFile(t *testing.T, name string) {
	t.Helper()

	_, err := tr.repo.worktree.Remove(name)
	require.NoError(t, err, "failed to remove %s", name)
}

// commit stages the named files and creates a commit with a fixed signature
func (tr *testRepo) commit(t *testing.T, message string, files ...string) plumbing.Hash {
	t.Helper()

	for _, name := range files {
		_, err := tr.repo.worktree.Add(name)
		require.NoError(t, err, "failed to add %s", name)
	}

	hash, err := tr.repo.worktree.Commit(message, &gogit.CommitOptions{
		Author:    testSignature(),
		Committer: testSignature(),
	})
	require.NoError(t, err, "failed to commit %q", message)

	return hash
}

// treeOf returns the tree hash of a commit
func (tr *testRepo) treeOf(t *testing.T, commit plumbing.Hash) plumbing.Hash {
	t.Helper()

	obj, err := tr.repo.repo.CommitObject(commit)
	require.NoError(t, err, "failed to load commit %s", commit)

	return obj.TreeHash
}

// mergeCommit writes a commit object with the given tree and parents directly
// into the object store, bypassing the worktree. Parent order is preserved.
func (tr *testRepo) mergeCommit(t *testing.T, message string, tree plumbing.Hash, parents ...plumbing.Hash) plumbing.Hash {
	t.Helper()

	commit := &object.Commit{
		Author:       *testSignature(),
		Committer:    *testSignature(),
		Message:      message,
		TreeHash:     tree,
		ParentHashes: parents,
	}

	obj := tr.repo.repo.Storer.NewEncodedObject()
	require.NoError(t, commit.Encode(obj), "failed to encode merge commit")

	hash, err := tr.repo.repo.Storer.SetEncodedObject(obj)
	require.NoError(t, err, "failed to store merge commit")

	return hash
}

// changeKinds collects the change kind per path from a CommitDiff
func changeKinds(diff CommitDiff) map[string]ChangeKind {
	kinds := make(map[string]ChangeKind, len(diff.Files))
	for _, fc := range diff.Files {
		kinds[fc.Path()] = fc.Kind
	}

	return kinds
}
