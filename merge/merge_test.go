package merge

import (
	"errors"
	"testing"
	"time"

	"github.com/nanovc/nanovc-go/clock"
	"github.com/nanovc/nanovc-go/content"
	"github.com/nanovc/nanovc-go/nvcerr"
	"github.com/nanovc/nanovc-go/repo"
	"github.com/nanovc/nanovc-go/repopath"
)

func snapshot(entries map[string]string) content.Area[content.RawBytes] {
	a := content.NewSorted[content.RawBytes]()
	for p, v := range entries {
		a.Put(repopath.At(p), content.RawBytes(v))
	}
	return a
}

func commitAt(r *repo.Repo, c *clock.Clock, entries map[string]string, firstParent repo.Handle, otherParents []repo.Handle) repo.Handle {
	commit := repo.NewCommit("", c.Now(), snapshot(entries), content.NewSorted[content.String](), firstParent, otherParents)
	return r.AppendCommit(commit)
}

func newTestClock() *clock.Clock {
	return clock.NewSimulatedClock([]int64{0, 1, 2, 3, 4, 5}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), clock.DefaultMinRange, clock.DefaultMaxRange)
}

func TestCommonAncestorLinearHistory(t *testing.T) {
	r := repo.New()
	c := newTestClock()

	root := commitAt(r, c, map[string]string{"/a": "A"}, repo.NoHandle, nil)
	destTip := commitAt(r, c, map[string]string{"/a": "A2"}, root, nil)
	srcTip := commitAt(r, c, map[string]string{"/a": "A", "/b": "B"}, root, nil)

	ancestor, err := CommonAncestor(r, r, destTip, srcTip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ancestor != root {
		t.Fatalf("expected ancestor %d, got %d", root, ancestor)
	}
}

func TestCommonAncestorNoSharedHistory(t *testing.T) {
	r := repo.New()
	c := newTestClock()

	destTip := commitAt(r, c, map[string]string{"/a": "A"}, repo.NoHandle, nil)
	srcTip := commitAt(r, c, map[string]string{"/b": "B"}, repo.NoHandle, nil)

	got, err := CommonAncestor(r, r, destTip, srcTip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != repo.NoHandle {
		t.Fatalf("expected no ancestor, got %d", got)
	}
}

func TestCommonAncestorCrossRepoErrors(t *testing.T) {
	destRepo := repo.New()
	srcRepo := repo.New()
	c := newTestClock()

	destTip := commitAt(destRepo, c, map[string]string{"/a": "A"}, repo.NoHandle, nil)
	srcTip := commitAt(srcRepo, c, map[string]string{"/a": "A"}, repo.NoHandle, nil)

	_, err := CommonAncestor(destRepo, srcRepo, destTip, srcTip)
	if !errors.Is(err, nvcerr.ErrCrossRepoMerge) {
		t.Fatalf("expected ErrCrossRepoMerge, got %v", err)
	}
}

func TestMergeAreasCrossRepoErrors(t *testing.T) {
	destRepo := repo.New()
	srcRepo := repo.New()
	c := newTestClock()

	destTip := commitAt(destRepo, c, map[string]string{"/a": "A"}, repo.NoHandle, nil)
	srcTip := commitAt(srcRepo, c, map[string]string{"/a": "A"}, repo.NoHandle, nil)

	_, err := MergeAreas(destRepo, srcRepo, repo.NoHandle, destTip, srcTip)
	if !errors.Is(err, nvcerr.ErrCrossRepoMerge) {
		t.Fatalf("expected ErrCrossRepoMerge, got %v", err)
	}
}

func mergeAreas(t *testing.T, r *repo.Repo, ancestor, dest, src repo.Handle) content.Area[content.RawBytes] {
	t.Helper()
	merged, err := MergeAreas(r, r, ancestor, dest, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return merged
}

func TestMergeAreasOnlyInEachSide(t *testing.T) {
	r := repo.New()
	c := newTestClock()

	root := commitAt(r, c, map[string]string{"/base": "B"}, repo.NoHandle, nil)
	dest := commitAt(r, c, map[string]string{"/base": "B", "/d-only": "D"}, root, nil)
	src := commitAt(r, c, map[string]string{"/base": "B", "/s-only": "S"}, root, nil)

	merged := mergeAreas(t, r, root, dest, src)

	if v, ok := merged.Get(repopath.At("/d-only")); !ok || string(v) != "D" {
		t.Fatalf("expected /d-only kept from dest, got %v %v", v, ok)
	}
	if v, ok := merged.Get(repopath.At("/s-only")); !ok || string(v) != "S" {
		t.Fatalf("expected /s-only taken from src, got %v %v", v, ok)
	}
	if v, ok := merged.Get(repopath.At("/base")); !ok || string(v) != "B" {
		t.Fatalf("expected /base unchanged, got %v %v", v, ok)
	}
}

func TestMergeAreasDestChangedOnly(t *testing.T) {
	r := repo.New()
	c := newTestClock()

	root := commitAt(r, c, map[string]string{"/a": "A"}, repo.NoHandle, nil)
	dest := commitAt(r, c, map[string]string{"/a": "A-dest"}, root, nil)
	src := commitAt(r, c, map[string]string{"/a": "A"}, root, nil)

	merged := mergeAreas(t, r, root, dest, src)
	if v, _ := merged.Get(repopath.At("/a")); string(v) != "A-dest" {
		t.Fatalf("expected dest's change to survive when src == ancestor, got %q", v)
	}
}

func TestMergeAreasSrcChangedOnly(t *testing.T) {
	r := repo.New()
	c := newTestClock()

	root := commitAt(r, c, map[string]string{"/a": "A"}, repo.NoHandle, nil)
	dest := commitAt(r, c, map[string]string{"/a": "A"}, root, nil)
	src := commitAt(r, c, map[string]string{"/a": "A-src"}, root, nil)

	merged := mergeAreas(t, r, root, dest, src)
	if v, _ := merged.Get(repopath.At("/a")); string(v) != "A-src" {
		t.Fatalf("expected src's change to take effect when dest == ancestor, got %q", v)
	}
}

func TestMergeAreasConflictTakesSource(t *testing.T) {
	r := repo.New()
	c := newTestClock()

	root := commitAt(r, c, map[string]string{"/a": "A"}, repo.NoHandle, nil)
	dest := commitAt(r, c, map[string]string{"/a": "A-dest"}, root, nil)
	src := commitAt(r, c, map[string]string{"/a": "A-src"}, root, nil)

	merged := mergeAreas(t, r, root, dest, src)
	if v, _ := merged.Get(repopath.At("/a")); string(v) != "A-src" {
		t.Fatalf("expected conflict to resolve last-writer-wins to src, got %q", v)
	}
}

func TestMergeAreasEqualContentKept(t *testing.T) {
	r := repo.New()
	c := newTestClock()

	root := commitAt(r, c, map[string]string{"/a": "A"}, repo.NoHandle, nil)
	dest := commitAt(r, c, map[string]string{"/a": "A", "/b": "same"}, root, nil)
	src := commitAt(r, c, map[string]string{"/a": "A", "/b": "same"}, root, nil)

	merged := mergeAreas(t, r, root, dest, src)
	if v, _ := merged.Get(repopath.At("/b")); string(v) != "same" {
		t.Fatalf("expected identical content on both sides to be kept, got %q", v)
	}
}

func TestMergeAreasNoCommonAncestor(t *testing.T) {
	r := repo.New()
	c := newTestClock()

	dest := commitAt(r, c, map[string]string{"/a": "A-dest"}, repo.NoHandle, nil)
	src := commitAt(r, c, map[string]string{"/a": "A-src"}, repo.NoHandle, nil)

	merged := mergeAreas(t, r, repo.NoHandle, dest, src)
	if v, _ := merged.Get(repopath.At("/a")); string(v) != "A-src" {
		t.Fatalf("expected conflict (empty ancestor) to resolve to src, got %q", v)
	}
}

// TestMergeAreasDeleteWinsOverUnchanged covers spec.md §4.7 step 3: a
// path deleted on one side and left untouched (still equal to the
// ancestor) on the other side is deleted in the merge result, not
// resurrected.
func TestMergeAreasDeleteWinsOverUnchanged(t *testing.T) {
	r := repo.New()
	c := newTestClock()

	root := commitAt(r, c, map[string]string{"/a": "X", "/keep": "K"}, repo.NoHandle, nil)
	dest := commitAt(r, c, map[string]string{"/keep": "K"}, root, nil) // dest deletes /a
	src := commitAt(r, c, map[string]string{"/a": "X", "/keep": "K"}, root, nil) // src leaves /a untouched

	merged := mergeAreas(t, r, root, dest, src)
	if _, ok := merged.Get(repopath.At("/a")); ok {
		t.Fatal("expected /a to stay deleted, not be resurrected by src's unchanged copy")
	}
}

// TestMergeAreasDeleteWinsOverUnchangedSymmetric is the mirror case:
// src deletes, dest leaves untouched.
func TestMergeAreasDeleteWinsOverUnchangedSymmetric(t *testing.T) {
	r := repo.New()
	c := newTestClock()

	root := commitAt(r, c, map[string]string{"/a": "X"}, repo.NoHandle, nil)
	dest := commitAt(r, c, map[string]string{"/a": "X"}, root, nil) // dest leaves /a untouched
	src := commitAt(r, c, map[string]string{}, root, nil)           // src deletes /a

	merged := mergeAreas(t, r, root, dest, src)
	if _, ok := merged.Get(repopath.At("/a")); ok {
		t.Fatal("expected /a to stay deleted when src deletes and dest is unchanged")
	}
}

// TestMergeAreasDeleteVsGenuineChangeSurvives confirms the ancestor
// check only suppresses the unchanged-vs-deleted case: if the
// surviving side actually changed the content relative to the
// ancestor, that change is kept even though the other side deleted it.
func TestMergeAreasDeleteVsGenuineChangeSurvives(t *testing.T) {
	r := repo.New()
	c := newTestClock()

	root := commitAt(r, c, map[string]string{"/a": "X"}, repo.NoHandle, nil)
	dest := commitAt(r, c, map[string]string{"/a": "X-changed"}, root, nil) // dest changes /a
	src := commitAt(r, c, map[string]string{}, root, nil)                  // src deletes /a

	merged := mergeAreas(t, r, root, dest, src)
	if v, ok := merged.Get(repopath.At("/a")); !ok || string(v) != "X-changed" {
		t.Fatalf("expected dest's genuine change to survive src's deletion, got %v %v", v, ok)
	}
}
