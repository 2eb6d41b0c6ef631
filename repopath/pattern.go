package repopath

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nanovc/nanovc-go/nvcerr"
)

// Pattern is a compiled glob pattern over repository paths. `*` matches
// any run of non-delimiter bytes; `**` matches any run including
// delimiters; any other literal is matched verbatim.
type Pattern struct {
	glob string
	re   *regexp.Regexp
}

// Matcher is anything with an absolute path to test against a Pattern.
type Matcher interface {
	AbsolutePath() Path
}

// Matching compiles glob into a Pattern. A leading delimiter is
// prepended to glob first unless it already has one, so a bare pattern
// like "*.json" is normalized to "/*.json".
//
// A run of three or more '*' is parsed greedily as pairs of "**" then
// possibly a single trailing "*": "***" compiles to ".*[^/]*" and
// "****" to ".*.*". This is the documented behavior of the pattern
// compiler, not a bug to be fixed (spec §9).
//
// glob must be valid UTF-8 — every repository path is — so a glob
// containing invalid byte sequences is a malformed pattern and is
// rejected with nvcerr.ErrInvalidPattern rather than silently compiled
// into a pattern with replacement characters.
func Matching(glob string) (Pattern, error) {
	if !utf8.ValidString(glob) {
		return Pattern{}, nvcerr.ErrInvalidPattern
	}

	if !strings.HasPrefix(glob, Delimiter) {
		glob = Delimiter + glob
	}

	var b strings.Builder
	b.WriteByte('^')

	runes := []rune(glob)
	i := 0
	for i < len(runes) {
		if runes[i] == '*' {
			// Count the run of consecutive '*'.
			j := i
			for j < len(runes) && runes[j] == '*' {
				j++
			}
			n := j - i
			for n >= 2 {
				b.WriteString(".*")
				n -= 2
			}
			if n == 1 {
				b.WriteString("[^/]*")
			}
			i = j
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(runes[i])))
		i++
	}
	b.WriteByte('$')

	return Pattern{glob: glob, re: regexp.MustCompile(b.String())}, nil
}

// String returns the normalized glob this Pattern was compiled from.
func (p Pattern) String() string {
	return p.glob
}

// Match tests whether the absolute path of each entry fully matches the
// compiled pattern, returning the matching subset in input order.
func Match[T Matcher](p Pattern, entries []T) []T {
	var out []T
	for _, e := range entries {
		if p.re.MatchString(e.AbsolutePath().String()) {
			out = append(out, e)
		}
	}
	return out
}
