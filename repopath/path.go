// Package repopath implements canonical repository path strings and the
// glob-style pattern matcher used to select paths out of a content area.
package repopath

import "strings"

// Delimiter is the sole path delimiter nanovc-go paths use.
const Delimiter = "/"

// Path is an immutable canonical path string. The zero value is the
// relative empty path.
type Path struct {
	s string
}

// At wraps s verbatim as a Path. No trimming or normalization happens
// here; use Absolute to canonicalize.
func At(s string) Path {
	return Path{s: s}
}

// String returns the path's underlying string.
func (p Path) String() string {
	return p.s
}

// IsAbsolute reports whether the path starts with the delimiter. The
// empty path is not absolute.
func (p Path) IsAbsolute() bool {
	return strings.HasPrefix(p.s, Delimiter)
}

// Absolute returns the absolute form of p: itself if already absolute,
// or the delimiter prepended otherwise. The empty path's absolute form
// is the root path "/".
func (p Path) Absolute() Path {
	if p.IsAbsolute() {
		return p
	}
	return Path{s: Delimiter + p.s}
}

// HasTrailingDelimiter reports whether the path's last character is the
// delimiter.
func (p Path) HasTrailingDelimiter() bool {
	return strings.HasSuffix(p.s, Delimiter)
}

// Resolve appends child to p, the way a shell resolves a relative path
// against a current directory. If child is absolute it replaces p
// entirely. Otherwise it is appended, inserting exactly one delimiter
// unless p already ends with one.
func (p Path) Resolve(child Path) Path {
	if child.IsAbsolute() {
		return child
	}
	if p.HasTrailingDelimiter() {
		return Path{s: p.s + child.s}
	}
	return Path{s: p.s + Delimiter + child.s}
}

// Equal compares two paths as strings after absolute-normalization.
func Equal(a, b Path) bool {
	return a.Absolute().s == b.Absolute().s
}
