// Package engine implements RepoEngine (spec §4.8): a stateless façade
// binding content, byteindex, clock, repo, diffengine, merge, and
// search into the single public operation surface an embedding host
// calls. All state lives on the Repo and ContentArea values passed in
// and out — RepoEngine itself holds only its collaborators, never
// mutable query state (spec §9: this is a Go interface/trait
// collapsing the source's generic base/engine/handler split, not a
// reproduction of that layering).
package engine

import (
	"github.com/nanovc/nanovc-go/clock"
	"github.com/nanovc/nanovc-go/config"
	"github.com/nanovc/nanovc-go/content"
	"github.com/nanovc/nanovc-go/diffengine"
	"github.com/nanovc/nanovc-go/merge"
	"github.com/nanovc/nanovc-go/repo"
	"github.com/nanovc/nanovc-go/search"
)

// RepoEngine binds a Repo and a Clock under one Config. It carries no
// state of its own beyond its collaborators, so a single RepoEngine
// value may front any number of Repos sequentially.
type RepoEngine struct {
	Repo   *repo.Repo
	Clock  *clock.Clock
	Config *config.Config
}

// New returns a RepoEngine fronting r, timestamping commits from c,
// using cfg (or config.Default() if cfg is nil).
func New(r *repo.Repo, c *clock.Clock, cfg *config.Config) *RepoEngine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &RepoEngine{Repo: r, Clock: c, Config: cfg}
}

// CreateArea returns a fresh, empty content area of the engine's
// configured variant.
func (e *RepoEngine) CreateArea() content.Area[content.RawBytes] {
	if e.Config.Engine.AreaVariant == config.AreaSorted {
		return content.NewSorted[content.RawBytes]()
	}
	return content.NewInsertionOrdered[content.RawBytes]()
}

// internArea copies area's entries into a fresh area, routing each
// entry's bytes through the repo's ByteArrayIndex when one is set
// (spec §4.8's commit operation: "each content's bytes are routed
// through the repo's ByteArrayIndex").
func (e *RepoEngine) internArea(area content.Area[content.RawBytes]) content.Area[content.RawBytes] {
	snapshot := content.NewSorted[content.RawBytes]()
	for _, entry := range area.Entries() {
		bytes := entry.Value.AsBytes()
		if e.Repo.Index != nil {
			bytes = e.Repo.Index.Intern(bytes)
		}
		snapshot.Put(entry.Path, content.RawBytes(bytes))
	}
	return snapshot
}

// Commit snapshots area into a new immutable Commit stamped by the
// engine's Clock, with firstParent and otherParents as given (either
// may be repo.NoHandle / nil for a root commit), and appends it to the
// Repo's arena. It does not advance any branch ref.
func (e *RepoEngine) Commit(area content.Area[content.RawBytes], message string, tags content.Area[content.String], firstParent repo.Handle, otherParents []repo.Handle) *repo.Commit {
	snapshot := e.internArea(area)
	commit := repo.NewCommit(message, e.Clock.Now(), snapshot, tags, firstParent, otherParents)
	e.Repo.AppendCommit(commit)
	return commit
}

// CommitToBranch commits area as a child of branch's current tip (or
// as a root commit if branch does not yet exist), then advances branch
// to point at the new commit.
func (e *RepoEngine) CommitToBranch(area content.Area[content.RawBytes], branch, message string, tags content.Area[content.String]) *repo.Commit {
	parent := repo.NoHandle
	if h, ok := e.Repo.BranchHandle(branch); ok {
		parent = h
	}
	commit := e.Commit(area, message, tags, parent, nil)
	handle := e.Repo.HandleOf(commit)
	e.Repo.CreateBranchAtCommit(branch, handle)
	return commit
}

// CreateBranchAtCommit points branch at commit.
func (e *RepoEngine) CreateBranchAtCommit(branch string, commit *repo.Commit) {
	e.Repo.CreateBranchAtCommit(branch, e.Repo.HandleOf(commit))
}

// RemoveBranch deletes branch's ref. Returns false if it did not exist.
func (e *RepoEngine) RemoveBranch(branch string) bool {
	return e.Repo.RemoveBranch(branch)
}

// GetLatestCommitForBranch returns branch's tip commit, or (nil, false)
// if branch does not exist.
func (e *RepoEngine) GetLatestCommitForBranch(branch string) (*repo.Commit, bool) {
	return e.Repo.GetLatestCommitForBranch(branch)
}

// GetBranchNames returns every branch name.
func (e *RepoEngine) GetBranchNames() []string {
	return e.Repo.GetBranchNames()
}

// TagCommit points tag at commit.
func (e *RepoEngine) TagCommit(tag string, commit *repo.Commit) {
	e.Repo.TagCommit(tag, e.Repo.HandleOf(commit))
}

// GetCommitForTag returns the commit tag points at, or (nil, false) if
// tag does not exist.
func (e *RepoEngine) GetCommitForTag(tag string) (*repo.Commit, bool) {
	return e.Repo.GetCommitForTag(tag)
}

// RemoveTag deletes tag's ref. Returns false if it did not exist.
func (e *RepoEngine) RemoveTag(tag string) bool {
	return e.Repo.RemoveTag(tag)
}

// GetTagNames returns every tag name.
func (e *RepoEngine) GetTagNames() []string {
	return e.Repo.GetTagNames()
}

// Checkout returns a fresh area populated from commit's snapshot.
func (e *RepoEngine) Checkout(commit *repo.Commit) content.Area[content.RawBytes] {
	area := e.CreateArea()
	e.CheckoutIntoArea(commit, area)
	return area
}

// CheckoutIntoArea clears area and refills it from commit's snapshot.
func (e *RepoEngine) CheckoutIntoArea(commit *repo.Commit, area content.Area[content.RawBytes]) {
	area.ReplaceAll(commit.Snapshot.Entries())
}

// ComputeDifferenceBetweenAreas is diffengine.ComputeDifference,
// exposed as a RepoEngine operation.
func (e *RepoEngine) ComputeDifferenceBetweenAreas(from, to content.Area[content.RawBytes]) *diffengine.Difference {
	return diffengine.ComputeDifference(from, to)
}

// ComputeDifferenceBetweenCommits checks out from and to and diffs
// their snapshots.
func (e *RepoEngine) ComputeDifferenceBetweenCommits(from, to *repo.Commit) *diffengine.Difference {
	return diffengine.ComputeDifference(from.Snapshot, to.Snapshot)
}

// ComputeDifferenceBetweenBranches diffs the current tips of two
// branches. Either absent branch is treated as an empty area.
func (e *RepoEngine) ComputeDifferenceBetweenBranches(fromBranch, toBranch string) *diffengine.Difference {
	return diffengine.ComputeDifference(e.branchSnapshot(fromBranch), e.branchSnapshot(toBranch))
}

// ComputeComparisonBetweenAreas is diffengine.ComputeComparison,
// exposed as a RepoEngine operation.
func (e *RepoEngine) ComputeComparisonBetweenAreas(from, to content.Area[content.RawBytes]) *diffengine.Comparison {
	return diffengine.ComputeComparison(from, to)
}

// ComputeComparisonBetweenCommits checks out from and to and compares
// their snapshots.
func (e *RepoEngine) ComputeComparisonBetweenCommits(from, to *repo.Commit) *diffengine.Comparison {
	return diffengine.ComputeComparison(from.Snapshot, to.Snapshot)
}

// ComputeComparisonBetweenBranches compares the current tips of two
// branches. Either absent branch is treated as an empty area.
func (e *RepoEngine) ComputeComparisonBetweenBranches(fromBranch, toBranch string) *diffengine.Comparison {
	return diffengine.ComputeComparison(e.branchSnapshot(fromBranch), e.branchSnapshot(toBranch))
}

func (e *RepoEngine) branchSnapshot(branch string) content.Area[content.RawBytes] {
	commit, ok := e.Repo.GetLatestCommitForBranch(branch)
	if !ok {
		return content.NewSorted[content.RawBytes]()
	}
	return commit.Snapshot
}

// MergeIntoBranchFromAnotherBranch merges src's tip into dest's tip
// per spec §4.7 and commits the result to dest with parents
// [destTip, srcTip]. If dest does not yet exist it is created at src's
// tip with no merge commit, since there is nothing to merge into.
func (e *RepoEngine) MergeIntoBranchFromAnotherBranch(dest, src, message string, tags content.Area[content.String]) (*repo.Commit, bool) {
	srcHandle, ok := e.Repo.BranchHandle(src)
	if !ok {
		return nil, false
	}

	destHandle, destExists := e.Repo.BranchHandle(dest)
	if !destExists {
		e.Repo.CreateBranchAtCommit(dest, srcHandle)
		commit, _ := e.Repo.GetLatestCommitForBranch(dest)
		return commit, true
	}

	ancestor, err := merge.CommonAncestor(e.Repo, e.Repo, destHandle, srcHandle)
	if err != nil {
		// destRepo and srcRepo are both e.Repo here, so CommonAncestor can
		// never see a cross-repo mismatch; a non-nil err means the merge
		// package's contract changed underneath this call.
		panic(err)
	}
	mergedArea, err := merge.MergeAreas(e.Repo, e.Repo, ancestor, destHandle, srcHandle)
	if err != nil {
		panic(err)
	}

	commit := e.Commit(mergedArea, message, tags, destHandle, []repo.Handle{srcHandle})
	e.Repo.CreateBranchAtCommit(dest, e.Repo.HandleOf(commit))
	return commit, true
}

// PrepareSearchQuery binds commitExpr/listExpr to params without
// evaluating them.
func (e *RepoEngine) PrepareSearchQuery(commitExpr, listExpr *search.Expression, params search.Params) *search.Definition {
	return search.Prepare(commitExpr, listExpr, params)
}

// Search prepares and immediately executes a query against the
// engine's Repo.
func (e *RepoEngine) Search(commitExpr, listExpr *search.Expression, params search.Params) (*search.Results, error) {
	return e.SearchWithQuery(e.PrepareSearchQuery(commitExpr, listExpr, params))
}

// SearchWithQuery executes a previously prepared Definition against
// the engine's Repo.
func (e *RepoEngine) SearchWithQuery(def *search.Definition) (*search.Results, error) {
	return search.Execute(def, e.Repo)
}

// Log returns branch's history by walking first-parent links from its
// tip to the root, tip first. A supplemented convenience (SPEC_FULL.md):
// a one-line composition of GetLatestCommitForBranch and the same
// first-parent walk MergeEngine's ancestor search already performs.
func (e *RepoEngine) Log(branch string) []*repo.Commit {
	tip, ok := e.Repo.BranchHandle(branch)
	if !ok {
		return nil
	}
	chain := e.Repo.FirstParentChain(tip)
	commits := make([]*repo.Commit, len(chain))
	for i, h := range chain {
		commits[i] = e.Repo.CommitAt(h)
	}
	return commits
}

// IsAncestor reports whether candidate is an ancestor of (or equal to)
// commit, walking all parent links transitively. A supplemented
// convenience (SPEC_FULL.md) exposing Repo.IsAncestor's DAG
// reachability check.
func (e *RepoEngine) IsAncestor(candidate, commit *repo.Commit) bool {
	return e.Repo.IsAncestor(e.Repo.HandleOf(candidate), e.Repo.HandleOf(commit))
}
