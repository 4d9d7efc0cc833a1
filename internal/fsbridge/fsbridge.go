// Package fsbridge adapts the project's native filesystem abstraction to
// the billy filesystem interface go-git stores repository state on, and
// constructs object storage tuned for read-heavy diff loading.
package fsbridge

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
)

// defaultCacheSize is the fallback LRU object cache size used when the
// caller supplies a non-positive value.
const defaultCacheSize = 100

// ToBillyFilesystem converts an fs.Filesystem to a billy.Filesystem.
// The passed filesystem must be a billy-backed FS from the fs/billy
// package; any other implementation is rejected.
//
//nolint:ireturn // returns interface as required by billy.Filesystem interface
func ToBillyFilesystem(fsys fs.Filesystem) (billy.Filesystem, error) {
	billyFS, ok := fsys.(*fsb.FS)
	if !ok {
		return nil, fmt.Errorf("filesystem must be a billy-backed FS from fs/billy, got %T", fsys)
	}

	return billyFS.Raw(), nil
}

// NewStorage creates git object storage over billyFS with an LRU object
// cache. Tree diffs repeatedly revisit the same commits, trees, and blobs,
// so the cache size directly affects diff loading throughput.
func NewStorage(billyFS billy.Filesystem, cacheSize int) *filesystem.Storage {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}

	objCache := cache.NewObjectLRU(cache.FileSize(cacheSize))

	return filesystem.NewStorage(billyFS, objCache)
}
