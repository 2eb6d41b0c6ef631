// Package content defines the Content value types a ContentArea holds
// and the ContentArea itself: an ordered mapping from absolute
// repopath.Path to Content.
package content

// Content is a semantic container for a byte sequence. Two variants are
// used throughout nanovc-go: RawBytes (the bytes are the content) and
// String (the logical value is text; AsBytes encodes it as UTF-8).
type Content interface {
	// AsBytes returns the content's byte representation.
	AsBytes() []byte
}

// RawBytes is Content whose logical value is exactly its byte slice.
type RawBytes []byte

// AsBytes returns b itself.
func (b RawBytes) AsBytes() []byte {
	return []byte(b)
}

// String is Content whose logical value is a text string, encoded to
// UTF-8 bytes on demand.
type String string

// NewString wraps s as String content.
func NewString(s string) String {
	return String(s)
}

// StringFromBytes decodes b as UTF-8 back into String content. The
// round trip StringFromBytes(String(s).AsBytes()) == String(s) holds
// for every valid Go string, since Go strings are already arbitrary
// byte sequences and conversion to/from []byte never lossily
// transcodes.
func StringFromBytes(b []byte) String {
	return String(b)
}

// AsBytes returns the UTF-8 encoding of s.
func (s String) AsBytes() []byte {
	return []byte(s)
}

// Equal reports whether two Content values have bytewise-equal
// representations.
func Equal(a, b Content) bool {
	ab, bb := a.AsBytes(), b.AsBytes()
	if len(ab) != len(bb) {
		return false
	}
	for i := range ab {
		if ab[i] != bb[i] {
			return false
		}
	}
	return true
}
