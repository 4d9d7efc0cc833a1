// Package git provides a high-level wrapper over a go-git object store.
// This file contains the commit diff loader: resolving a commit, enumerating
// its parents, and computing one tree diff per parent relationship.
package git

import (
	"bytes"
	"context"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// LoadCommitDiffs resolves rev to a commit and returns one CommitDiff per
// parent relationship, in recorded parent order. Root commits yield exactly
// one diff, computed against the empty tree. Merge commits yield one diff
// per parent; the first parent is conventionally the branch merged into.
func (r *Repo) LoadCommitDiffs(ctx context.Context, rev string, opts DiffOptions) ([]CommitDiff, error) {
	if rev == "" {
		return nil, WrapError(ErrInvalidRef, "revision cannot be empty")
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, WrapErrorf(ErrRevisionNotFound, "could not resolve revision %q", rev)
	}

	loader, err := NewCommitDiffLoader(r, opts)
	if err != nil {
		return nil, err
	}

	return loader.LoadFromHash(ctx, *hash)
}

// LoadCommitDiff is a convenience wrapper around LoadCommitDiffs that
// returns only the first-parent diff. Callers inspecting merge commits
// should use LoadCommitDiffs to see every parent relationship.
func (r *Repo) LoadCommitDiff(ctx context.Context, rev string, opts DiffOptions) (*CommitDiff, error) {
	diffs, err := r.LoadCommitDiffs(ctx, rev, opts)
	if err != nil {
		return nil, err
	}

	return &diffs[0], nil
}

// CommitDiffLoader computes the structured diffs for a single commit.
// It holds a backend reference and an options value; construct one per
// operation and discard it after use.
type CommitDiffLoader struct {
	repo    *gogit.Repository
	opts    DiffOptions
	filters []ChangeFilter
}

// NewCommitDiffLoader binds a loader to an opened repository and a
// DiffOptions value. Filters, if any, are applied progressively to each
// candidate change; a change must pass ALL filters to be included.
func NewCommitDiffLoader(r *Repo, opts DiffOptions, filters ...ChangeFilter) (*CommitDiffLoader, error) {
	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid diff options")
	}

	opts.applyDefaults()

	return &CommitDiffLoader{
		repo:    r.repo,
		opts:    opts,
		filters: filters,
	}, nil
}

// LoadFromHash loads the ordered diff sequence for the commit with the
// given hash. The operation is atomic: on any failure no partial result
// is returned.
func (l *CommitDiffLoader) LoadFromHash(ctx context.Context, hash plumbing.Hash) ([]CommitDiff, error) {
	commit, err := l.repo.CommitObject(hash)
	if err != nil {
		return nil, WrapErrorf(ErrObjectNotFound, "could not load commit %s", hash)
	}

	commitTree, err := commit.Tree()
	if err != nil {
		return nil, WrapErrorf(ErrObjectNotFound, "could not load tree for commit %s", hash)
	}

	meta := commitMeta(commit)

	// Root commit: a single diff against the empty tree.
	if commit.NumParents() == 0 {
		diff, err := l.diffTrees(ctx, meta, nil, nil, commitTree)
		if err != nil {
			return nil, err
		}
		return []CommitDiff{*diff}, nil
	}

	diffs := make([]CommitDiff, 0, commit.NumParents())
	for _, parentHash := range commit.ParentHashes {
		parent, err := l.repo.CommitObject(parentHash)
		if err != nil {
			return nil, WrapErrorf(ErrObjectNotFound, "could not load parent commit %s", parentHash)
		}

		parentTree, err := parent.Tree()
		if err != nil {
			return nil, WrapErrorf(ErrObjectNotFound, "could not load tree for parent commit %s", parentHash)
		}

		parentID := parentHash
		diff, err := l.diffTrees(ctx, meta, &parentID, parentTree, commitTree)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, *diff)
	}

	return diffs, nil
}

// diffTrees computes one CommitDiff between the parent tree (nil for the
// empty tree) and the commit tree.
func (l *CommitDiffLoader) diffTrees(
	ctx context.Context,
	meta Commit,
	parent *plumbing.Hash,
	parentTree, commitTree *object.Tree,
) (*CommitDiff, error) {
	changes, err := object.DiffTreeWithOptions(ctx, parentTree, commitTree, l.treeDiffOptions())
	if err != nil {
		return nil, WrapErrorf(ErrDiffFailed, "could not diff trees for commit %s", meta.Hash)
	}

	var copySources map[plumbing.Hash]string
	if l.opts.DetectCopies && parentTree != nil {
		copySources, err = blobsByContent(parentTree)
		if err != nil {
			return nil, WrapErrorf(ErrDiffFailed, "could not index parent tree for commit %s", meta.Hash)
		}
	}

	diff := &CommitDiff{
		Commit: meta,
		Parent: parent,
	}

	for _, change := range changes {
		if !passesFilters(change, l.filters) {
			continue
		}

		fc, skip, err := l.fileChange(ctx, change, copySources)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}

		diff.Files = append(diff.Files, *fc)
		diff.TotalAdditions += fc.Additions
		diff.TotalDeletions += fc.Deletions
	}

	return diff, nil
}

// fileChange classifies one tree change and renders its content delta.
// skip is true when the whitespace policy drops the change entirely.
func (l *CommitDiffLoader) fileChange(
	ctx context.Context,
	change *object.Change,
	copySources map[plumbing.Hash]string,
) (fc *FileChange, skip bool, err error) {
	from := change.From.Name
	to := change.To.Name

	kind := Modified
	switch {
	case from == "":
		kind = Added
		if src, ok := copySources[change.To.TreeEntry.Hash]; ok && src != to {
			kind = Copied
			from = src
		}
	case to == "":
		kind = Deleted
	case from != to:
		kind = Renamed
	}

	if kind == Modified && l.ignoresWhitespace() {
		equal, wsErr := l.equalUnderWhitespacePolicy(change)
		if wsErr != nil {
			return nil, false, wsErr
		}
		if equal {
			return nil, true, nil
		}
	}

	patch, err := change.PatchContext(ctx)
	if err != nil {
		return nil, false, WrapErrorf(ErrDiffFailed, "could not compute patch for %q", pathOf(from, to))
	}

	fc = &FileChange{
		From: from,
		To:   to,
		Kind: kind,
	}

	for _, filePatch := range patch.FilePatches() {
		if filePatch.IsBinary() {
			fc.Binary = true
			continue
		}

		for _, chunk := range filePatch.Chunks() {
			switch chunk.Type() {
			case fdiff.Add:
				fc.Additions += countLines(chunk.Content())
			case fdiff.Delete:
				fc.Deletions += countLines(chunk.Content())
			case fdiff.Equal:
			}
		}
	}

	if !fc.Binary {
		text, encErr := l.renderPatch(patch.FilePatches())
		if encErr != nil {
			return nil, false, WrapErrorf(ErrDiffFailed, "could not render patch for %q", pathOf(from, to))
		}
		fc.Patch = text
	}

	return fc, false, nil
}

// renderPatch encodes file patches as unified diff text with the configured
// context line count.
func (l *CommitDiffLoader) renderPatch(filePatches []fdiff.FilePatch) (string, error) {
	var buf bytes.Buffer

	enc := fdiff.NewUnifiedEncoder(&buf, l.opts.ContextLines)
	if err := enc.Encode(filePatchSet{patches: filePatches}); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// treeDiffOptions translates DiffOptions into the backend's tree diff options.
func (l *CommitDiffLoader) treeDiffOptions() *object.DiffTreeOptions {
	return &object.DiffTreeOptions{
		DetectRenames: l.opts.DetectRenames,
		RenameScore:   uint(l.opts.RenameScore),
		RenameLimit:   uint(l.opts.RenameLimit),
	}
}

// ignoresWhitespace reports whether any whitespace policy option is set.
func (l *CommitDiffLoader) ignoresWhitespace() bool {
	return l.opts.IgnoreWhitespace || l.opts.IgnoreWhitespaceChange || l.opts.IgnoreBlankLines
}

// equalUnderWhitespacePolicy reports whether the two sides of a modification
// have equal content once the configured whitespace normalization is applied.
// Binary content is never considered equal.
func (l *CommitDiffLoader) equalUnderWhitespacePolicy(change *object.Change) (bool, error) {
	oldContent, oldBinary, err := l.blobContent(change.From.TreeEntry.Hash)
	if err != nil {
		return false, WrapErrorf(ErrDiffFailed, "could not read blob for %q", change.From.Name)
	}

	newContent, newBinary, err := l.blobContent(change.To.TreeEntry.Hash)
	if err != nil {
		return false, WrapErrorf(ErrDiffFailed, "could not read blob for %q", change.To.Name)
	}

	if oldBinary || newBinary {
		return false, nil
	}

	return l.normalize(oldContent) == l.normalize(newContent), nil
}

// blobContent reads a blob's full content and reports whether it looks binary.
func (l *CommitDiffLoader) blobContent(hash plumbing.Hash) (string, bool, error) {
	blob, err := l.repo.BlobObject(hash)
	if err != nil {
		return "", false, err
	}

	reader, err := blob.Reader()
	if err != nil {
		return "", false, err
	}
	defer func() {
		_ = reader.Close()
	}()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", false, err
	}

	return buf.String(), bytes.ContainsRune(buf.Bytes(), 0), nil
}

// normalize applies the configured whitespace policy to text content.
func (l *CommitDiffLoader) normalize(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		switch {
		case l.opts.IgnoreWhitespace:
			line = stripWhitespace(line)
		case l.opts.IgnoreWhitespaceChange:
			line = collapseWhitespace(line)
		}

		if l.opts.IgnoreBlankLines && strings.TrimSpace(line) == "" {
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// stripWhitespace removes every whitespace character from a line.
func stripWhitespace(line string) string {
	var b strings.Builder
	for _, r := range line {
		if r != ' ' && r != '\t' && r != '\r' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// collapseWhitespace folds runs of whitespace into a single space and trims
// trailing whitespace, matching the usual -b semantics.
func collapseWhitespace(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// countLines counts the lines in a chunk, treating a trailing fragment
// without a newline as a line.
func countLines(content string) int {
	if content == "" {
		return 0
	}

	lines := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		lines++
	}

	return lines
}

// pathOf picks the most descriptive path for error context.
func pathOf(from, to string) string {
	if to != "" {
		return to
	}

	return from
}

// blobsByContent indexes a tree's blobs by content hash, keeping the first
// path seen in tree order for each hash so copy sources are deterministic.
func blobsByContent(tree *object.Tree) (map[plumbing.Hash]string, error) {
	index := make(map[plumbing.Hash]string)

	err := tree.Files().ForEach(func(f *object.File) error {
		if _, ok := index[f.Hash]; !ok {
			index[f.Hash] = f.Name
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return index, nil
}

// commitMeta extracts the exported commit metadata from a backend commit.
func commitMeta(commit *object.Commit) Commit {
	summary := commit.Message
	if idx := strings.IndexByte(summary, '\n'); idx >= 0 {
		summary = summary[:idx]
	}

	return Commit{
		Hash: commit.Hash,
		Author: Signature{
			Name:  commit.Author.Name,
			Email: commit.Author.Email,
			When:  commit.Author.When,
		},
		Committer: Signature{
			Name:  commit.Committer.Name,
			Email: commit.Committer.Email,
			When:  commit.Committer.When,
		},
		Summary: strings.TrimSpace(summary),
		Message: commit.Message,
	}
}

// filePatchSet adapts a slice of file patches to the encoder's Patch interface.
type filePatchSet struct {
	patches []fdiff.FilePatch
}

func (f filePatchSet) FilePatches() []fdiff.FilePatch { return f.patches }
func (filePatchSet) Message() string                  { return "" }
