package git

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// ChangeFilter is a predicate for filtering tree changes during diff
// loading. It returns true if the change should be included.
// Filters are applied progressively - if any filter returns false,
// the change is excluded.
type ChangeFilter func(*object.Change) bool

// passesFilters checks if a change passes all filters.
func passesFilters(change *object.Change, filters []ChangeFilter) bool {
	for _, filter := range filters {
		if filter != nil && !filter(change) {
			return false
		}
	}
	return true
}

// Ready-made filters for narrowing a commit diff to the paths a caller
// cares about. Every filter matches against both sides of a change so
// renames are never half-matched.

// PathFilter includes changes whose old or new path matches pattern.
// Pattern syntax is filepath.Match (* and ? wildcards).
func PathFilter(pattern string) ChangeFilter {
	return func(change *object.Change) bool {
		if change.From.Name != "" {
			if matched, _ := filepath.Match(pattern, change.From.Name); matched {
				return true
			}
		}
		if change.To.Name != "" {
			if matched, _ := filepath.Match(pattern, change.To.Name); matched {
				return true
			}
		}
		return false
	}
}

// PathPrefixFilter includes changes whose old or new path starts with
// prefix. Pass a trailing slash to scope the diff to one directory.
func PathPrefixFilter(prefix string) ChangeFilter {
	return func(change *object.Change) bool {
		return strings.HasPrefix(change.From.Name, prefix) ||
			strings.HasPrefix(change.To.Name, prefix)
	}
}

// ExtensionFilter includes changes touching files with the given
// extension, dot included (".go", ".md").
func ExtensionFilter(ext string) ChangeFilter {
	return func(change *object.Change) bool {
		return filepath.Ext(change.From.Name) == ext ||
			filepath.Ext(change.To.Name) == ext
	}
}

// ExcludePathPrefixFilter is the inverse of PathPrefixFilter: changes
// under prefix are dropped, everything else passes.
func ExcludePathPrefixFilter(prefix string) ChangeFilter {
	includeFilter := PathPrefixFilter(prefix)
	return func(change *object.Change) bool {
		return !includeFilter(change)
	}
}
