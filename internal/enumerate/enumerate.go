// Package enumerate implements the archive's file-enumerator collaborator:
// expanding a caller-supplied pattern into an ordered list of member file
// paths. It is deliberately narrow — the glob syntax itself is someone
// else's problem (github.com/bmatcuk/doublestar/v4's), this package only
// adapts it to the deterministic-ordering contract the archive needs.
package enumerate

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Enumerator expands a pattern into zero or more filesystem paths in a
// deterministic order. Non-existence of any individual returned path is a
// per-file concern for the caller, not something Enumerator itself reports.
type Enumerator interface {
	Enumerate(pattern string) ([]string, error)
}

// Glob is the default [Enumerator]: a thin, deterministically-sorted
// wrapper around doublestar's filesystem glob. Plain patterns with no
// "**" (the overwhelmingly common case — "data/binout*") behave exactly
// like a shell glob; "**" is also supported for callers who want to
// search a directory tree.
type Glob struct{}

func (Glob) Enumerate(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
