// Package git provides a narrow, idiomatic Go abstraction over a git
// object store: opening a repository, reading its configuration, and
// extracting the structured diff introduced by a specific commit.
//
// The package is a facade over go-git. Repository state lives behind the
// project's native filesystem abstraction, so every operation works with
// both on-disk and in-memory repositories.
//
// # Opening a repository
//
//	import (
//	    "context"
//	    billyfs "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
//	    "github.com/rebasekit/git"
//	)
//
//	// Open at an exact path
//	repo, err := git.Open(context.Background(), &git.Options{
//	    FS:      billyfs.NewOSFS("/path/to/repo"),
//	    Workdir: ".",
//	})
//	defer repo.Close()
//
//	// Or discover the repository, honoring $GIT_DIR and walking upward
//	repo, err = git.OpenFromEnv(context.Background(), &git.Options{
//	    FS:      billyfs.NewOSFS("/path/to"),
//	    Workdir: "repo/nested/dir",
//	})
//
// # Loading commit diffs
//
// LoadCommitDiffs returns one CommitDiff per parent relationship: exactly
// one for root commits (computed against the empty tree) and one per
// parent, in recorded order, for merge commits.
//
//	diffs, err := repo.LoadCommitDiffs(ctx, "HEAD", git.DiffOptions{
//	    DetectRenames: true,
//	    ContextLines:  3,
//	})
//	for _, d := range diffs {
//	    for _, f := range d.Files {
//	        fmt.Println(f.Kind, f.Path())
//	    }
//	}
//
// LoadCommitDiff is a first-parent convenience wrapper for callers that do
// not care about additional merge parents.
//
// # Error handling
//
// Operations return sentinel errors (ErrNotRepository, ErrConfigInvalid,
// ErrRevisionNotFound, ErrObjectNotFound, ErrDiffFailed) wrapped with
// context describing the attempted operation. Check them with errors.Is.
// Failures are atomic: no partial CommitDiff is ever returned.
//
// # Concurrency
//
// All operations are synchronous and blocking. A Repo is not safe for
// concurrent use; use one Repo per goroutine or serialize access.
package git
