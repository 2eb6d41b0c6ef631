package engine

import (
	"testing"
	"time"

	"github.com/nanovc/nanovc-go/clock"
	"github.com/nanovc/nanovc-go/config"
	"github.com/nanovc/nanovc-go/content"
	"github.com/nanovc/nanovc-go/repo"
	"github.com/nanovc/nanovc-go/repopath"
	"github.com/nanovc/nanovc-go/search"
)

func newTestEngine() *RepoEngine {
	c := clock.NewSimulatedClock([]int64{0, 1, 2, 3, 4, 5, 6, 7}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), clock.DefaultMinRange, clock.DefaultMaxRange)
	return New(repo.New(), c, config.Default())
}

func TestCommitToBranchAdvancesTip(t *testing.T) {
	e := newTestEngine()
	area := e.CreateArea()
	area.Put(repopath.At("/a"), content.RawBytes("A"))

	commit := e.CommitToBranch(area, "main", "first", content.NewSorted[content.String]())

	tip, ok := e.GetLatestCommitForBranch("main")
	if !ok || tip != commit {
		t.Fatalf("expected branch tip to be the new commit")
	}
	if commit.FirstParent != repo.NoParent {
		t.Fatalf("expected root commit, got parent %d", commit.FirstParent)
	}
}

func TestCommitToBranchChainsParents(t *testing.T) {
	e := newTestEngine()
	area := e.CreateArea()
	area.Put(repopath.At("/a"), content.RawBytes("A"))
	first := e.CommitToBranch(area, "main", "first", content.NewSorted[content.String]())

	area2 := e.CreateArea()
	area2.Put(repopath.At("/a"), content.RawBytes("A2"))
	second := e.CommitToBranch(area2, "main", "second", content.NewSorted[content.String]())

	secondHandle := e.Repo.HandleOf(second)
	commitAtHandle := e.Repo.CommitAt(secondHandle)
	if commitAtHandle.FirstParent != e.Repo.HandleOf(first) {
		t.Fatalf("expected second commit's parent to be first")
	}
}

func TestCheckoutRoundTrip(t *testing.T) {
	e := newTestEngine()
	area := e.CreateArea()
	area.Put(repopath.At("/a"), content.RawBytes("A"))
	commit := e.CommitToBranch(area, "main", "first", content.NewSorted[content.String]())

	out := e.Checkout(commit)
	v, ok := out.Get(repopath.At("/a"))
	if !ok || string(v) != "A" {
		t.Fatalf("expected checked-out area to contain /a=A, got %v %v", v, ok)
	}
}

func TestInterningSharesCanonicalBytes(t *testing.T) {
	e := newTestEngine()

	area1 := e.CreateArea()
	area1.Put(repopath.At("/a"), content.RawBytes("same content"))
	c1 := e.Commit(area1, "c1", content.NewSorted[content.String](), repo.NoHandle, nil)

	area2 := e.CreateArea()
	area2.Put(repopath.At("/b"), content.RawBytes("same content"))
	c2 := e.Commit(area2, "c2", content.NewSorted[content.String](), repo.NoHandle, nil)

	v1, _ := c1.Snapshot.Get(repopath.At("/a"))
	v2, _ := c2.Snapshot.Get(repopath.At("/b"))
	if &v1[0] != &v2[0] {
		t.Fatal("expected interned equal byte sequences to share backing array")
	}
}

// TestHelloWorldScenario implements the "Hello World diff" scenario:
// commit an initial area, mutate it, commit again, and confirm the
// comparison between the two commits' snapshots renders the expected
// per-path states.
func TestHelloWorldScenario(t *testing.T) {
	e := newTestEngine()

	initial := e.CreateArea()
	initial.Put(repopath.At("Hello"), content.RawBytes("World"))
	initial.Put(repopath.At("Static"), content.RawBytes("Content"))
	initial.Put(repopath.At("Mistake"), content.RawBytes("Honest"))
	first := e.CommitToBranch(initial, "main", "initial", content.NewSorted[content.String]())

	next := e.Checkout(first)
	next.Put(repopath.At("Hello"), content.RawBytes("Nano World"))
	next.Put(repopath.At("/Hello/Info"), content.RawBytes("Details"))
	next.Remove(repopath.At("Mistake"))
	next.Put(repopath.At("/🔧/👍"), content.RawBytes("I ❤ NanoVC‼"))
	second := e.CommitToBranch(next, "main", "fixup", content.NewSorted[content.String]())

	cmp := e.ComputeComparisonBetweenCommits(first, second)
	want := "/Hello : Changed\n/Hello/Info : Added\n/Mistake : Deleted\n/Static : Unchanged\n/🔧/👍 : Added"
	if got := cmp.AsListString(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestBranchLifecycle(t *testing.T) {
	e := newTestEngine()
	area := e.CreateArea()
	commit := e.CommitToBranch(area, "feature", "msg", content.NewSorted[content.String]())

	names := e.GetBranchNames()
	if len(names) != 1 || names[0] != "feature" {
		t.Fatalf("got %v", names)
	}

	if !e.RemoveBranch("feature") {
		t.Fatal("expected removal to succeed")
	}
	if _, ok := e.GetLatestCommitForBranch("feature"); ok {
		t.Fatal("expected branch to be gone")
	}
	_ = commit
}

func TestTagLifecycle(t *testing.T) {
	e := newTestEngine()
	area := e.CreateArea()
	commit := e.CommitToBranch(area, "main", "msg", content.NewSorted[content.String]())

	e.TagCommit("v1", commit)
	tagged, ok := e.GetCommitForTag("v1")
	if !ok || tagged != commit {
		t.Fatal("expected tag to resolve to commit")
	}
	if !e.RemoveTag("v1") {
		t.Fatal("expected tag removal to succeed")
	}
}

func TestMergeFastForwardWhenDestAbsent(t *testing.T) {
	e := newTestEngine()
	area := e.CreateArea()
	area.Put(repopath.At("/a"), content.RawBytes("A"))
	e.CommitToBranch(area, "feature", "msg", content.NewSorted[content.String]())

	merged, ok := e.MergeIntoBranchFromAnotherBranch("main", "feature", "merge", content.NewSorted[content.String]())
	if !ok {
		t.Fatal("expected merge to succeed")
	}
	tip, _ := e.GetLatestCommitForBranch("main")
	if tip != merged {
		t.Fatal("expected main to be created at feature's tip")
	}
}

func TestMergeCombinesBothSides(t *testing.T) {
	e := newTestEngine()

	base := e.CreateArea()
	base.Put(repopath.At("/shared"), content.RawBytes("base"))
	e.CommitToBranch(base, "main", "root", content.NewSorted[content.String]())
	e.CreateBranchAtCommit("feature", mustTip(t, e, "main"))

	mainArea := e.Checkout(mustTip(t, e, "main"))
	mainArea.Put(repopath.At("/main-only"), content.RawBytes("M"))
	e.CommitToBranch(mainArea, "main", "main change", content.NewSorted[content.String]())

	featureArea := e.Checkout(mustTip(t, e, "feature"))
	featureArea.Put(repopath.At("/feature-only"), content.RawBytes("F"))
	e.CommitToBranch(featureArea, "feature", "feature change", content.NewSorted[content.String]())

	merged, ok := e.MergeIntoBranchFromAnotherBranch("main", "feature", "merge feature", content.NewSorted[content.String]())
	if !ok {
		t.Fatal("expected merge to succeed")
	}

	if v, ok := merged.Snapshot.Get(repopath.At("/main-only")); !ok || string(v) != "M" {
		t.Fatal("expected /main-only to survive merge")
	}
	if v, ok := merged.Snapshot.Get(repopath.At("/feature-only")); !ok || string(v) != "F" {
		t.Fatal("expected /feature-only to survive merge")
	}
	if len(merged.OtherParents) != 1 {
		t.Fatalf("expected one merge parent, got %d", len(merged.OtherParents))
	}
}

func mustTip(t *testing.T, e *RepoEngine, branch string) *repo.Commit {
	t.Helper()
	c, ok := e.GetLatestCommitForBranch(branch)
	if !ok {
		t.Fatalf("expected branch %q to exist", branch)
	}
	return c
}

func TestSearchTipOfBranchLog(t *testing.T) {
	e := newTestEngine()
	area := e.CreateArea()
	first := e.CommitToBranch(area, "main", "first", content.NewSorted[content.String]())
	second := e.CommitToBranch(e.Checkout(first), "main", "second", content.NewSorted[content.String]())

	results, err := e.Search(search.Tip(search.AllRepoCommits()), search.AllRepoCommits(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results.Commit != second {
		t.Fatalf("expected tip to be the latest commit")
	}
	if len(results.List) != 2 {
		t.Fatalf("expected 2 commits in list, got %d", len(results.List))
	}
}

func TestLogWalksFirstParentTipFirst(t *testing.T) {
	e := newTestEngine()
	first := e.CommitToBranch(e.CreateArea(), "main", "first", content.NewSorted[content.String]())
	second := e.CommitToBranch(e.Checkout(first), "main", "second", content.NewSorted[content.String]())
	third := e.CommitToBranch(e.Checkout(second), "main", "third", content.NewSorted[content.String]())

	log := e.Log("main")
	if len(log) != 3 || log[0] != third || log[1] != second || log[2] != first {
		t.Fatalf("expected tip-first first-parent chain, got %v", log)
	}
}

func TestIsAncestor(t *testing.T) {
	e := newTestEngine()
	first := e.CommitToBranch(e.CreateArea(), "main", "first", content.NewSorted[content.String]())
	second := e.CommitToBranch(e.Checkout(first), "main", "second", content.NewSorted[content.String]())

	if !e.IsAncestor(first, second) {
		t.Fatal("expected first to be an ancestor of second")
	}
	if e.IsAncestor(second, first) {
		t.Fatal("did not expect second to be an ancestor of first")
	}
}
