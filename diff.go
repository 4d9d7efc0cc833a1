// Package git provides a high-level wrapper over a go-git object store.
// This file contains the commit diff data model and diff options.
package git

import (
	"github.com/go-git/go-git/v5/plumbing"
)

const (
	// DefaultContextLines is the default number of unchanged lines shown
	// around each hunk in rendered patches.
	DefaultContextLines = 3

	// DefaultRenameScore is the default similarity threshold (0-100) above
	// which a delete/add pair is reported as a rename.
	DefaultRenameScore = 50
)

// DiffOptions configures how tree differences are computed. The zero value
// is usable after applyDefaults; a DiffOptions value is immutable once
// passed into a load operation.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines around each hunk.
	// Defaults to DefaultContextLines.
	ContextLines int

	// DetectRenames enables rename detection between deleted and added
	// entries, using RenameScore and RenameLimit.
	DetectRenames bool

	// DetectCopies enables exact-content copy detection: an added file whose
	// blob also exists, unchanged, at another path in the parent tree is
	// reported as a copy of that path.
	DetectCopies bool

	// RenameScore is the similarity threshold (0-100) for rename detection.
	// Defaults to DefaultRenameScore.
	RenameScore int

	// RenameLimit caps the number of rename candidates considered.
	// 0 means the backend default.
	RenameLimit int

	// IgnoreWhitespace drops changes whose old and new contents are equal
	// once all whitespace is removed.
	IgnoreWhitespace bool

	// IgnoreWhitespaceChange drops changes whose old and new contents are
	// equal once runs of whitespace are collapsed.
	IgnoreWhitespaceChange bool

	// IgnoreBlankLines drops changes whose old and new contents are equal
	// once blank lines are removed.
	IgnoreBlankLines bool
}

// Validate checks that the DiffOptions are properly configured.
func (o *DiffOptions) Validate() error {
	if o.ContextLines < 0 {
		return WrapError(ErrInvalidRef, "ContextLines cannot be negative")
	}

	if o.RenameScore < 0 || o.RenameScore > 100 {
		return WrapError(ErrInvalidRef, "RenameScore must be between 0 and 100")
	}

	if o.RenameLimit < 0 {
		return WrapError(ErrInvalidRef, "RenameLimit cannot be negative")
	}

	return nil
}

// applyDefaults sets default values for any unset fields.
func (o *DiffOptions) applyDefaults() {
	if o.ContextLines == 0 {
		o.ContextLines = DefaultContextLines
	}

	if o.RenameScore == 0 {
		o.RenameScore = DefaultRenameScore
	}
}

// ChangeKind classifies a per-file change within a commit diff.
type ChangeKind int

const (
	// Added indicates the file exists only in the new tree.
	Added ChangeKind = iota

	// Deleted indicates the file exists only in the old tree.
	Deleted

	// Modified indicates the file exists in both trees with different content.
	Modified

	// Renamed indicates the file moved to a new path, with or without
	// content changes.
	Renamed

	// Copied indicates the file was copied from an existing path.
	Copied
)

// String returns a human-readable representation of the ChangeKind.
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Modified:
		return "modified"
	case Renamed:
		return "renamed"
	case Copied:
		return "copied"
	default:
		return "unknown"
	}
}

// FileChange is one per-file change record within a CommitDiff.
type FileChange struct {
	// From is the path in the old tree. Empty for added files.
	From string

	// To is the path in the new tree. Empty for deleted files.
	To string

	// Kind classifies the change.
	Kind ChangeKind

	// Binary indicates the content delta involves binary data;
	// Patch is empty when set.
	Binary bool

	// Patch is the unified diff text for this file, rendered with the
	// configured context line count.
	Patch string

	// Additions is the number of added lines.
	Additions int

	// Deletions is the number of removed lines.
	Deletions int
}

// Path returns the post-change path of the file, falling back to the
// pre-change path for deletions.
func (fc FileChange) Path() string {
	if fc.To != "" {
		return fc.To
	}

	return fc.From
}

// Commit is the metadata of a loaded commit.
type Commit struct {
	// Hash is the commit's object id.
	Hash plumbing.Hash

	// Author is who wrote the change.
	Author Signature

	// Committer is who recorded the change.
	Committer Signature

	// Summary is the first line of the commit message.
	Summary string

	// Message is the full commit message.
	Message string
}

// CommitDiff is the change set between one commit and one specific parent,
// or the empty tree for root commits. Values are immutable once returned.
type CommitDiff struct {
	// Commit is the metadata of the commit the diff belongs to.
	Commit Commit

	// Parent is the parent commit the diff was computed against.
	// Nil for the empty-tree diff of a root commit.
	Parent *plumbing.Hash

	// Files holds the per-file change records, in tree order.
	Files []FileChange

	// TotalAdditions is the sum of added lines across all files.
	TotalAdditions int

	// TotalDeletions is the sum of removed lines across all files.
	TotalDeletions int
}
