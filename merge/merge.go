// Package merge implements the stateless three-way MergeEngine (spec
// §4.7): locate a common ancestor by walking first-parent chains,
// checkout all three sides into byte-array areas, and classify each
// path in the union independently.
package merge

import (
	"github.com/nanovc/nanovc-go/content"
	"github.com/nanovc/nanovc-go/nvcerr"
	"github.com/nanovc/nanovc-go/repo"
	"github.com/nanovc/nanovc-go/repopath"
)

// CommonAncestor returns the handle of the first commit reachable from
// both dest (in destRepo) and src (in srcRepo) by following
// first-parent links, per spec §9's documented first-parent contract
// (not a full lowest-common-ancestor search — criss-cross histories
// may pick a farther ancestor than a full LCA would). Returns
// repo.NoHandle if the two chains share no commit.
//
// destRepo and srcRepo must be the same *repo.Repo: MergeEngine never
// merges commits belonging to two different Repos. A mismatch returns
// nvcerr.ErrCrossRepoMerge.
func CommonAncestor(destRepo, srcRepo *repo.Repo, dest, src repo.Handle) (repo.Handle, error) {
	if destRepo != srcRepo {
		return repo.NoHandle, nvcerr.ErrCrossRepoMerge
	}

	destChain := destRepo.FirstParentChain(dest)
	srcReachable := make(map[repo.Handle]bool)
	for _, h := range srcRepo.FirstParentChain(src) {
		srcReachable[h] = true
	}
	for _, h := range destChain {
		if srcReachable[h] {
			return h, nil
		}
	}
	return repo.NoHandle, nil
}

// checkoutSnapshot returns an empty area if handle is repo.NoHandle
// (an absent common ancestor, spec §4.7 step 1), otherwise a copy of
// the commit's snapshot entries.
func checkoutSnapshot(r *repo.Repo, handle repo.Handle) content.Area[content.RawBytes] {
	area := content.NewSorted[content.RawBytes]()
	if handle == repo.NoHandle {
		return area
	}
	c := r.CommitAt(handle)
	if c == nil {
		return area
	}
	area.ReplaceAll(c.Snapshot.Entries())
	return area
}

// MergeAreas implements spec §4.7 steps 2-4: compute the merged
// content area for destHandle (in destRepo) merged with srcHandle (in
// srcRepo), using ancestorHandle (possibly repo.NoHandle) as the
// three-way base. destRepo and srcRepo must be the same *repo.Repo,
// same restriction as CommonAncestor; a mismatch returns
// nvcerr.ErrCrossRepoMerge.
func MergeAreas(destRepo, srcRepo *repo.Repo, ancestorHandle, destHandle, srcHandle repo.Handle) (content.Area[content.RawBytes], error) {
	if destRepo != srcRepo {
		return nil, nvcerr.ErrCrossRepoMerge
	}

	ancestor := checkoutSnapshot(destRepo, ancestorHandle)
	dest := checkoutSnapshot(destRepo, destHandle)
	src := checkoutSnapshot(srcRepo, srcHandle)

	merged := content.NewSorted[content.RawBytes]()

	union := make(map[string]repopath.Path)
	for _, e := range dest.Entries() {
		union[e.Path.Absolute().String()] = e.Path
	}
	for _, e := range src.Entries() {
		union[e.Path.Absolute().String()] = e.Path
	}

	for _, path := range union {
		dVal, dOk := dest.Get(path)
		sVal, sOk := src.Get(path)
		aVal, aOk := ancestor.Get(path)

		switch {
		case dOk && sOk && content.Equal(dVal, sVal):
			merged.Put(path, dVal)

		case dOk && !sOk:
			// Present only in dest. If dest's value still matches the
			// ancestor, dest made no change here and src's deletion
			// wins — omit the path. Otherwise dest genuinely
			// added/changed it, which survives the deletion.
			if !(aOk && content.Equal(dVal, aVal)) {
				merged.Put(path, dVal)
			}

		case !dOk && sOk:
			// Present only in src: the symmetric case.
			if !(aOk && content.Equal(sVal, aVal)) {
				merged.Put(path, sVal)
			}

		case dOk && sOk:
			switch {
			case aOk && content.Equal(dVal, aVal):
				merged.Put(path, sVal)
			case aOk && content.Equal(sVal, aVal):
				merged.Put(path, dVal)
			default:
				// Genuine conflict: last-writer-wins biased to the
				// source side (spec §9, documented as intentional).
				merged.Put(path, sVal)
			}
		}
	}

	return merged, nil
}
