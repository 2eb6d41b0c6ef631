package diffengine

import "github.com/nanovc/nanovc-go/content"

// Comparison is a mapping from absolute path to
// Added/Changed/Deleted/Unchanged, covering the union of paths present
// in either area exactly once.
type Comparison struct {
	states map[string]State
}

// Get returns the state recorded for path, or (_, false) if path
// appears in neither area.
func (c *Comparison) Get(path string) (State, bool) {
	s, ok := c.states[path]
	return s, ok
}

// AsListString renders one "path : StateName" line per path, sorted by
// absolute path, joined by "\n" with no trailing newline.
func (c *Comparison) AsListString() string {
	return asListString(c.states)
}

// ComputeComparison implements spec §4.6: identical to
// ComputeDifference, except paths with equal content in both areas are
// recorded as Unchanged instead of being omitted.
func ComputeComparison(from, to content.Area[content.RawBytes]) *Comparison {
	states := make(map[string]State)

	for _, e := range from.Entries() {
		key := e.Path.Absolute().String()
		toContent, ok := to.Get(e.Path)
		switch {
		case !ok:
			states[key] = Deleted
		case !content.Equal(e.Value, toContent):
			states[key] = Changed
		default:
			states[key] = Unchanged
		}
	}

	for _, e := range to.Entries() {
		key := e.Path.Absolute().String()
		if _, recorded := states[key]; recorded {
			continue
		}
		states[key] = Added
	}

	return &Comparison{states: states}
}
