// Package git provides a high-level Go wrapper over a go-git object store.
// It exposes repository opening, configuration retrieval, and commit diff
// extraction while operating exclusively through the project's native
// filesystem abstraction.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gobilly "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	"github.com/rebasekit/git/internal/fsbridge"
)

const (
	// DefaultStorerCacheSize is the default size for the LRU object cache.
	DefaultStorerCacheSize = 1000

	// DefaultWorkdir is the default worktree directory name.
	DefaultWorkdir = "."

	// GitDirEnv is the environment variable consulted by OpenFromEnv before
	// walking the filesystem. When set it names the git directory to open.
	GitDirEnv = "GIT_DIR"

	// gitDirName is the repository metadata directory inside a worktree.
	gitDirName = ".git"
)

// Options configures repository discovery/creation and performance.
type Options struct {
	// FS is the REQUIRED native filesystem root (OS or in-memory).
	// All repository state lives within this filesystem.
	FS fs.Filesystem

	// Workdir is the path within FS for the worktree root.
	// For OpenFromEnv it is the starting point of the upward walk.
	// Defaults to "." (current directory in FS).
	Workdir string

	// Bare indicates if this is a bare repository (.git only, no worktree).
	// Defaults to false (non-bare repository with worktree).
	Bare bool

	// StorerCacheSize sets the LRU objects cache entries.
	// Higher values improve performance but use more memory.
	// Defaults to DefaultStorerCacheSize.
	StorerCacheSize int
}

// Validate checks that the Options are properly configured.
// It returns an error if required fields are missing or invalid.
func (o *Options) Validate() error {
	if o.FS == nil {
		return WrapError(ErrInvalidRef, "FS is required")
	}

	if o.StorerCacheSize < 0 {
		return WrapError(ErrInvalidRef, "StorerCacheSize cannot be negative")
	}

	return nil
}

// applyDefaults sets default values for any unset fields in Options.
func (o *Options) applyDefaults() {
	if o.Workdir == "" {
		o.Workdir = DefaultWorkdir
	}

	if o.StorerCacheSize == 0 {
		o.StorerCacheSize = DefaultStorerCacheSize
	}
}

// Signature represents an author/committer identity on a commit.
type Signature struct {
	// Name is the author's or committer's name.
	Name string

	// Email is the author's or committer's email address.
	Email string

	// When is the timestamp for the signature.
	When time.Time
}

// Repo represents an opened git repository and provides read-oriented
// high-level operations. It exclusively owns the backend connection;
// Close releases it. A Repo is not safe for concurrent use.
type Repo struct {
	repo     *git.Repository
	storage  *filesystem.Storage
	worktree *git.Worktree
	fs       fs.Filesystem
	options  Options
	gitDir   string
}

// openStorage builds the object storage and worktree filesystem for the
// repository rooted at workdir within opts.FS.
func openStorage(opts *Options, workdir string) (*filesystem.Storage, gobilly.Filesystem, error) {
	billyFS, err := fsbridge.ToBillyFilesystem(opts.FS)
	if err != nil {
		return nil, nil, fmt.Errorf("filesystem conversion failed: %w", err)
	}

	scopedFS, err := billyFS.Chroot(workdir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to chroot to workdir %q: %w", workdir, err)
	}

	if opts.Bare {
		// For bare repos, storage is at the root
		return fsbridge.NewStorage(scopedFS, opts.StorerCacheSize), nil, nil
	}

	// For non-bare repos, storage goes in the .git subdirectory
	dotGitFS, err := scopedFS.Chroot(gitDirName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access %s directory: %w", gitDirName, err)
	}

	return fsbridge.NewStorage(dotGitFS, opts.StorerCacheSize), scopedFS, nil
}

// Init creates a new git repository at the specified location.
// It initializes both bare and non-bare repositories with proper storage
// and worktree setup.
func Init(ctx context.Context, opts *Options) (*Repo, error) {
	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}

	opts.applyDefaults()

	storage, worktreeFS, err := openStorage(opts, opts.Workdir)
	if err != nil {
		return nil, err
	}

	repo, err := git.Init(storage, worktreeFS)
	if err != nil {
		return nil, WrapError(err, "failed to initialize repository")
	}

	return newRepo(repo, storage, opts, opts.Workdir)
}

// Open opens an existing git repository at the exact workdir given in opts.
// The repository must already exist; for non-bare repositories both the
// .git directory and worktree must be present.
func Open(ctx context.Context, opts *Options) (*Repo, error) {
	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}

	opts.applyDefaults()

	storage, worktreeFS, err := openStorage(opts, opts.Workdir)
	if err != nil {
		return nil, WrapErrorf(ErrNotRepository, "could not open repository from path %q", opts.Workdir)
	}

	repo, err := git.Open(storage, worktreeFS)
	if err != nil {
		return nil, WrapErrorf(ErrNotRepository, "could not open repository from path %q", opts.Workdir)
	}

	return newRepo(repo, storage, opts, opts.Workdir)
}

// OpenFromEnv discovers and opens an existing repository. If the GIT_DIR
// environment variable is set, it names the git directory to open (as an
// OS path, outside opts.FS). Otherwise the search walks from opts.Workdir
// upward to the filesystem root, looking for a .git directory or a bare
// repository layout. The environment is evaluated once, at open time.
func OpenFromEnv(ctx context.Context, opts *Options) (*Repo, error) {
	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}

	opts.applyDefaults()

	if gitDir := os.Getenv(GitDirEnv); gitDir != "" {
		return openGitDir(ctx, opts, gitDir)
	}

	workdir, bare, err := discoverWorkdir(opts.FS, opts.Workdir)
	if err != nil {
		return nil, WrapErrorf(err, "could not open repository from environment (searched from %q)", opts.Workdir)
	}

	discovered := *opts
	discovered.Workdir = workdir
	discovered.Bare = bare

	return Open(ctx, &discovered)
}

// openGitDir opens the git directory named by the GIT_DIR override.
// The directory is opened directly as object storage, without a worktree.
func openGitDir(ctx context.Context, opts *Options, gitDir string) (*Repo, error) {
	envOpts := Options{
		FS:              fsb.NewOSFS(gitDir),
		Workdir:         DefaultWorkdir,
		Bare:            true,
		StorerCacheSize: opts.StorerCacheSize,
	}

	repo, err := Open(ctx, &envOpts)
	if err != nil {
		return nil, WrapErrorf(ErrNotRepository, "could not open repository from environment (%s=%q)", GitDirEnv, gitDir)
	}
	repo.gitDir = gitDir

	return repo, nil
}

// discoverWorkdir walks from start upward to the filesystem root and returns
// the first directory containing a repository, along with whether that
// repository is bare.
func discoverWorkdir(fsys fs.Filesystem, start string) (workdir string, bare bool, err error) {
	dir := filepath.Clean(start)

	for {
		hasDotGit, existsErr := fsys.Exists(filepath.Join(dir, gitDirName))
		if existsErr != nil {
			return "", false, WrapErrorf(existsErr, "failed to probe %q", dir)
		}
		if hasDotGit {
			return dir, false, nil
		}

		if isBareLayout(fsys, dir) {
			return dir, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, ErrNotRepository
		}
		dir = parent
	}
}

// isBareLayout reports whether dir itself looks like a git directory
// (HEAD file plus objects and refs directories).
func isBareLayout(fsys fs.Filesystem, dir string) bool {
	for _, entry := range []string{"HEAD", "objects", "refs"} {
		ok, err := fsys.Exists(filepath.Join(dir, entry))
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// newRepo assembles a Repo and resolves its worktree for non-bare layouts.
func newRepo(repo *git.Repository, storage *filesystem.Storage, opts *Options, workdir string) (*Repo, error) {
	r := &Repo{
		repo:    repo,
		storage: storage,
		fs:      opts.FS,
		options: *opts,
		gitDir:  workdir,
	}

	if !opts.Bare {
		worktree, err := repo.Worktree()
		if err != nil {
			return nil, WrapError(err, "failed to get worktree")
		}
		r.worktree = worktree
	}

	return r, nil
}

// Path returns the location of the opened repository, as resolved at open
// time. For GIT_DIR overrides this is the override path itself.
func (r *Repo) Path() string {
	return r.gitDir
}

// Close releases the backend connection, closing any open packfile handles.
// The Repo must not be used after Close returns.
func (r *Repo) Close() error {
	if r.storage == nil {
		return nil
	}

	return WrapError(r.storage.Close(), "failed to close object storage")
}
