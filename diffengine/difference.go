// Package diffengine implements the stateless DifferenceEngine and
// ComparisonEngine (spec §4.5, §4.6) plus a unified-diff rendering
// helper for individual Changed paths.
package diffengine

import (
	"sort"
	"strings"

	"github.com/nanovc/nanovc-go/content"
	"github.com/nanovc/nanovc-go/repopath"
)

// State is one of Added, Changed, Deleted (Difference) or additionally
// Unchanged (Comparison).
type State int

const (
	Added State = iota
	Changed
	Deleted
	Unchanged
)

// String returns the state's spec-defined name, used verbatim by
// AsListString.
func (s State) String() string {
	switch s {
	case Added:
		return "Added"
	case Changed:
		return "Changed"
	case Deleted:
		return "Deleted"
	case Unchanged:
		return "Unchanged"
	default:
		return "Unknown"
	}
}

// Difference is a mapping from absolute path to Added/Changed/Deleted.
// Paths with equal content in both areas do not appear.
type Difference struct {
	states map[string]State
}

// HasDifferences reports whether any path differs.
func (d *Difference) HasDifferences() bool {
	return len(d.states) > 0
}

// Get returns the state recorded for path, or (_, false) if path does
// not appear in the difference.
func (d *Difference) Get(path repopath.Path) (State, bool) {
	s, ok := d.states[path.Absolute().String()]
	return s, ok
}

// Paths returns every path with a recorded state, in no particular
// order.
func (d *Difference) Paths() []string {
	paths := make([]string, 0, len(d.states))
	for p := range d.states {
		paths = append(paths, p)
	}
	return paths
}

// AsListString renders one "path : StateName" line per recorded path,
// sorted by absolute path, joined by "\n" with no trailing newline.
func (d *Difference) AsListString() string {
	return asListString(d.states)
}

func asListString(states map[string]State) string {
	paths := make([]string, 0, len(states))
	for p := range states {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	lines := make([]string, len(paths))
	for i, p := range paths {
		lines[i] = p + " : " + states[p].String()
	}
	return strings.Join(lines, "\n")
}

// ComputeDifference implements spec §4.5: for each path in from absent
// from to, record Deleted; for paths present in both with unequal
// content, record Changed; for paths present only in to, record Added.
// Equal paths are omitted entirely. The engine is pure and holds no
// state, so a single value is safe to reuse across goroutines.
func ComputeDifference(from, to content.Area[content.RawBytes]) *Difference {
	states := make(map[string]State)

	for _, e := range from.Entries() {
		key := e.Path.Absolute().String()
		toContent, ok := to.Get(e.Path)
		switch {
		case !ok:
			states[key] = Deleted
		case !content.Equal(e.Value, toContent):
			states[key] = Changed
		}
	}

	for _, e := range to.Entries() {
		key := e.Path.Absolute().String()
		if _, recorded := states[key]; recorded {
			continue
		}
		if !from.Has(e.Path) {
			states[key] = Added
		}
	}

	return &Difference{states: states}
}
