// Package repo implements the commit DAG: immutable Commits, and the
// Repo that owns them plus branch/tag refs (spec §3, §4.8's ref
// operations).
package repo

import (
	"crypto/rand"
	"sync"

	"github.com/nanovc/nanovc-go/clock"
	"github.com/nanovc/nanovc-go/content"
	"github.com/oklog/ulid/v2"
)

// Commit is an immutable record of a content snapshot plus metadata and
// parent links. Parents are handles (indexes into the owning Repo's
// commit arena, spec §9), never pointers that could form a cycle.
type Commit struct {
	// ID is a ULID minted from Timestamp, a supplemented field (see
	// SPEC_FULL.md) giving every commit a stable, time-sortable
	// external identifier. It plays no part in any spec invariant.
	ID string

	Message   string
	Timestamp clock.Timestamp

	// Snapshot is the interned byte-array content area this commit
	// records.
	Snapshot content.Area[content.RawBytes]

	// Tags is the string content area carrying commit metadata such as
	// /author. Named "commit tags" in spec §3 — unrelated to Repo's
	// named Tags refs.
	Tags content.Area[content.String]

	// FirstParent is this commit's primary parent, or -1 for a root
	// commit. It indexes into the owning Repo's commit arena.
	FirstParent int

	// OtherParents are additional parents (e.g. the merge source), in
	// order, each indexing into the owning Repo's commit arena.
	OtherParents []int
}

// NoParent marks the absence of a first parent.
const NoParent = -1

// IsRoot reports whether c has no parents at all.
func (c *Commit) IsRoot() bool {
	return c.FirstParent == NoParent && len(c.OtherParents) == 0
}

// AllParents concatenates FirstParent (if present) with OtherParents,
// in that order, as arena indexes.
func (c *Commit) AllParents() []int {
	if c.FirstParent == NoParent {
		return append([]int(nil), c.OtherParents...)
	}
	parents := make([]int, 0, 1+len(c.OtherParents))
	parents = append(parents, c.FirstParent)
	parents = append(parents, c.OtherParents...)
	return parents
}

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

func newCommitID(ts clock.Timestamp) string {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(ts.Instant()), entropy).String()
}

// NewCommit builds an immutable Commit stamped with ts, deriving its
// external ID (see SPEC_FULL.md) from the timestamp's instant.
func NewCommit(
	message string,
	ts clock.Timestamp,
	snapshot content.Area[content.RawBytes],
	tags content.Area[content.String],
	firstParent Handle,
	otherParents []Handle,
) *Commit {
	return &Commit{
		ID:           newCommitID(ts),
		Message:      message,
		Timestamp:    ts,
		Snapshot:     snapshot,
		Tags:         tags,
		FirstParent:  firstParent,
		OtherParents: otherParents,
	}
}
