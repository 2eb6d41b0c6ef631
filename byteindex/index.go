// Package byteindex implements ByteArrayIndex, the deduplicating
// interner that lets identical byte sequences across commits share
// memory.
package byteindex

import (
	"sync"

	"github.com/zeebo/blake3"
)

// Index is a set-like interner mapping a byte sequence to the canonical
// stored instance for that sequence. It is safe for concurrent use —
// the only cross-Repo shared mutable resource nanovc-go defines (spec
// §5) — by serializing access behind a mutex.
type Index struct {
	mu      sync.Mutex
	buckets map[[32]byte][][]byte
}

// New returns an empty Index.
func New() *Index {
	return &Index{buckets: make(map[[32]byte][][]byte)}
}

var canonicalEmpty = []byte{}

// Intern returns the canonical stored instance for data: if an equal
// byte sequence was interned before, that earlier instance is returned;
// otherwise data itself becomes the canonical instance. A nil or empty
// input is normalized to a single canonical empty slice shared by every
// Index. Equality is bytewise; the BLAKE3 hash is only a bucketing key,
// never trusted on its own — every candidate in a hash's bucket is
// verified byte-for-byte before being treated as equal.
func (idx *Index) Intern(data []byte) []byte {
	if len(data) == 0 {
		return canonicalEmpty
	}

	key := blake3.Sum256(data)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, candidate := range idx.buckets[key] {
		if bytesEqual(candidate, data) {
			return candidate
		}
	}
	idx.buckets[key] = append(idx.buckets[key], data)
	return data
}

// Len returns the number of distinct byte sequences currently interned.
// Intended for tests and diagnostics, not part of the core contract.
func (idx *Index) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	n := 0
	for _, bucket := range idx.buckets {
		n += len(bucket)
	}
	return n
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
