package diffengine

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType distinguishes the three kinds of line a unified diff hunk
// can contain.
type LineType int

const (
	LineContext LineType = iota
	LineAdd
	LineDelete
)

// Line is a single line within a Hunk.
type Line struct {
	Type LineType
	Text string
}

// Hunk is a contiguous region of a unified diff between two Content
// values, with contextLines of unchanged lines on either side of the
// changed lines.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// RenderUnified computes a line-level unified diff between oldText and
// newText (the decoded string form of two Content values for the same
// path, one from each side of a Changed entry). Adapted from the
// teacher's working-tree diff renderer: it runs go-diff's line-rune
// trick to get a line-granular diff cheaply, then groups the result
// into hunks with contextLines of surrounding context.
func RenderUnified(oldText, newText string, contextLines int) []Hunk {
	dmp := diffmatchpatch.New()

	oldRunes, newRunes, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []Line
	for _, d := range diffs {
		parts := strings.Split(d.Text, "\n")
		for i, part := range parts {
			if i == len(parts)-1 && part == "" {
				continue
			}
			var lt LineType
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				lt = LineContext
			case diffmatchpatch.DiffInsert:
				lt = LineAdd
			case diffmatchpatch.DiffDelete:
				lt = LineDelete
			}
			lines = append(lines, Line{Type: lt, Text: part})
		}
	}

	return groupIntoHunks(lines, contextLines)
}

func groupIntoHunks(lines []Line, contextLines int) []Hunk {
	if len(lines) == 0 {
		return nil
	}

	var hunks []Hunk
	var current *Hunk
	oldLine, newLine := 1, 1

	for i, line := range lines {
		isChange := line.Type != LineContext
		needsNewHunk := isChange && current == nil

		if isChange && current != nil {
			contextCount := 0
			for j := i - 1; j >= 0 && lines[j].Type == LineContext; j-- {
				contextCount++
			}
			if contextCount > contextLines*2 {
				hunks = append(hunks, *current)
				current = nil
				needsNewHunk = true
			}
		}

		if needsNewHunk {
			hunk := Hunk{OldStart: oldLine, NewStart: newLine}
			start := i - contextLines
			if start < 0 {
				start = 0
			}
			for j := start; j < i; j++ {
				if lines[j].Type == LineContext {
					hunk.Lines = append(hunk.Lines, lines[j])
					hunk.OldCount++
					hunk.NewCount++
				}
			}
			hunk.OldStart = oldLine - len(hunk.Lines)
			hunk.NewStart = newLine - len(hunk.Lines)
			current = &hunk
		}

		// A context line stays in the open hunk only within contextLines
		// of the previous change, or inside a gap the next change joins.
		keep := true
		if current != nil && line.Type == LineContext {
			since, until := 0, 0
			for j := i; j >= 0 && lines[j].Type == LineContext; j-- {
				since++
			}
			for j := i; j < len(lines) && lines[j].Type == LineContext; j++ {
				until++
			}
			joins := i+until < len(lines) && since+until-1 <= contextLines*2
			keep = since <= contextLines || joins
		}

		if current != nil && keep {
			current.Lines = append(current.Lines, line)
			switch line.Type {
			case LineContext:
				current.OldCount++
				current.NewCount++
			case LineAdd:
				current.NewCount++
			case LineDelete:
				current.OldCount++
			}
		}

		switch line.Type {
		case LineContext:
			oldLine++
			newLine++
		case LineAdd:
			newLine++
		case LineDelete:
			oldLine++
		}
	}

	if current != nil {
		hunks = append(hunks, *current)
	}
	return hunks
}

// FormatUnified renders hunks as a standard "@@ -old,+new @@" unified
// diff body (no file header — the caller knows the path already).
func FormatUnified(hunks []Hunk) string {
	var sb strings.Builder
	for _, h := range hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			switch l.Type {
			case LineContext:
				sb.WriteString(" " + l.Text + "\n")
			case LineAdd:
				sb.WriteString("+" + l.Text + "\n")
			case LineDelete:
				sb.WriteString("-" + l.Text + "\n")
			}
		}
	}
	return sb.String()
}
