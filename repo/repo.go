package repo

import (
	"github.com/nanovc/nanovc-go/byteindex"
	"github.com/nanovc/nanovc-go/nvcerr"
)

// Handle indexes a Commit in a Repo's arena. Handles, not pointers,
// are what Commit.FirstParent/OtherParents store — this rules out
// reference cycles by construction (spec §9) and lets a test build a
// "cyclic" parent graph without ever leaking Commit values.
type Handle = int

// NoHandle is returned by lookups that found nothing.
const NoHandle Handle = -1

// Repo is in-memory state holding every commit appended to it
// (whether or not a ref still reaches it), its branch and tag
// name→Commit maps, and optionally a
// per-repo ByteArrayIndex. A Repo is not safe for concurrent mutation
// (spec §5); callers must serialize writes to a given Repo.
type Repo struct {
	// Index interns commit snapshot bytes when non-nil. Index may be
	// shared across Repos — it is the only cross-Repo mutable
	// resource nanovc-go defines.
	Index *byteindex.Index

	commits  []*Commit
	branches map[string]Handle
	tags     map[string]Handle
}

// New returns an empty Repo with its own dedicated ByteArrayIndex.
func New() *Repo {
	r, err := NewWithIndex(byteindex.New())
	if err != nil {
		// byteindex.New() always returns a non-nil Index, so
		// NewWithIndex can never reject it.
		panic(err)
	}
	return r
}

// NewWithIndex returns an empty Repo using idx for interning; idx may
// be shared with other Repos. idx must be non-nil: constructing a Repo
// with a nil ByteArrayIndex is a programmer error (nvcerr.ErrNilByteIndex),
// not a way to opt out of interning.
func NewWithIndex(idx *byteindex.Index) (*Repo, error) {
	if idx == nil {
		return nil, nvcerr.ErrNilByteIndex
	}
	return &Repo{
		Index:    idx,
		branches: make(map[string]Handle),
		tags:     make(map[string]Handle),
	}, nil
}

// AppendCommit adds c to the commit arena and returns its handle. The
// arena's append order is the Repo's total commit-creation order
// (spec §5): ties on identical timestamps break by this order.
func (r *Repo) AppendCommit(c *Commit) Handle {
	r.commits = append(r.commits, c)
	return len(r.commits) - 1
}

// CommitAt returns the commit stored at handle, or nil if handle is
// out of range.
func (r *Repo) CommitAt(handle Handle) *Commit {
	if handle < 0 || handle >= len(r.commits) {
		return nil
	}
	return r.commits[handle]
}

// HandleOf returns the arena handle for commit, or NoHandle if commit
// is not (by pointer identity) in this Repo's arena.
func (r *Repo) HandleOf(commit *Commit) Handle {
	for h, c := range r.commits {
		if c == commit {
			return h
		}
	}
	return NoHandle
}

// AllCommits returns every commit in the repo in creation order.
func (r *Repo) AllCommits() []*Commit {
	out := make([]*Commit, len(r.commits))
	copy(out, r.commits)
	return out
}

// CommitCount returns the number of commits in the arena.
func (r *Repo) CommitCount() int {
	return len(r.commits)
}

// CreateBranchAtCommit points branch name at handle, creating or
// overwriting the ref.
func (r *Repo) CreateBranchAtCommit(name string, handle Handle) {
	r.branches[name] = handle
}

// RemoveBranch deletes branch name's ref. Only the ref is removed; the
// commits it pointed at stay in the arena. Returns false if the branch
// did not exist.
func (r *Repo) RemoveBranch(name string) bool {
	if _, ok := r.branches[name]; !ok {
		return false
	}
	delete(r.branches, name)
	return true
}

// GetLatestCommitForBranch returns the commit branch name currently
// points at, or (nil, false) if the branch does not exist.
func (r *Repo) GetLatestCommitForBranch(name string) (*Commit, bool) {
	h, ok := r.branches[name]
	if !ok {
		return nil, false
	}
	return r.CommitAt(h), true
}

// BranchHandle returns the handle branch name points at, or
// (NoHandle, false).
func (r *Repo) BranchHandle(name string) (Handle, bool) {
	h, ok := r.branches[name]
	if !ok {
		return NoHandle, false
	}
	return h, true
}

// GetBranchNames returns every branch name, in no particular order.
func (r *Repo) GetBranchNames() []string {
	names := make([]string, 0, len(r.branches))
	for name := range r.branches {
		names = append(names, name)
	}
	return names
}

// TagCommit points tag name at handle, creating or overwriting the
// ref.
func (r *Repo) TagCommit(name string, handle Handle) {
	r.tags[name] = handle
}

// GetCommitForTag returns the commit tag name points at, or
// (nil, false) if the tag does not exist.
func (r *Repo) GetCommitForTag(name string) (*Commit, bool) {
	h, ok := r.tags[name]
	if !ok {
		return nil, false
	}
	return r.CommitAt(h), true
}

// RemoveTag deletes tag name's ref. Returns false if the tag did not
// exist.
func (r *Repo) RemoveTag(name string) bool {
	if _, ok := r.tags[name]; !ok {
		return false
	}
	delete(r.tags, name)
	return true
}

// GetTagNames returns every tag name, in no particular order.
func (r *Repo) GetTagNames() []string {
	names := make([]string, 0, len(r.tags))
	for name := range r.tags {
		names = append(names, name)
	}
	return names
}

// FirstParentChain returns the handles reachable by repeatedly
// following FirstParent starting at (and including) handle, ending at
// a root commit.
func (r *Repo) FirstParentChain(handle Handle) []Handle {
	var chain []Handle
	for handle != NoHandle {
		chain = append(chain, handle)
		c := r.CommitAt(handle)
		if c == nil {
			break
		}
		handle = c.FirstParent
	}
	return chain
}

// IsAncestor reports whether candidate is reachable from handle by
// following AllParents (first parent and every other parent),
// transitively. A commit is its own ancestor.
func (r *Repo) IsAncestor(candidate, handle Handle) bool {
	seen := make(map[Handle]bool)
	stack := []Handle{handle}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if h == NoHandle || seen[h] {
			continue
		}
		seen[h] = true
		if h == candidate {
			return true
		}
		c := r.CommitAt(h)
		if c == nil {
			continue
		}
		stack = append(stack, c.AllParents()...)
	}
	return false
}
