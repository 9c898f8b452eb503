package diff

import (
	"strings"

	"github.com/twinpane/twinpane/pkg/models"
)

// DefaultWindow is the realignment lookahead, in lines, on each side.
// It is an accuracy/performance trade-off, not a correctness bound:
// highly repetitive inputs may realign earlier than a minimal diff
// would.
const DefaultWindow = 1000

// TextOptions controls line equality and the realignment search
type TextOptions struct {
	// CaseSensitive compares lines exactly; when false lines are
	// case-folded first
	CaseSensitive bool

	// IgnoreWhitespace collapses runs of whitespace to single spaces
	// and trims before comparing
	IgnoreWhitespace bool

	// IgnoreBlankLines treats two blank-after-normalization lines as
	// equal regardless of their original content
	IgnoreBlankLines bool

	// Window bounds the realignment lookahead per side. Zero means
	// DefaultWindow.
	Window int
}

// TextDiff is the result of aligning two line sequences
type TextDiff struct {
	// Segments in order; their left lengths sum to the left line
	// count, right lengths to the right line count
	Segments []models.DiffSegment

	// Stats summarizes the changed line counts
	Stats models.DiffStats
}

// TextDiffEngine aligns two ordered line sequences into typed segments
// using a bounded nearest-match search.
type TextDiffEngine struct {
	options TextOptions
}

// NewTextDiffEngine creates an engine with the given options.
func NewTextDiffEngine(options TextOptions) *TextDiffEngine {
	if options.Window <= 0 {
		options.Window = DefaultWindow
	}
	return &TextDiffEngine{options: options}
}

// SplitLines splits file content on line boundaries. A trailing newline
// does not produce a final empty line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// normalize applies the equality policy to one line.
func (e *TextDiffEngine) normalize(line string) string {
	if !e.options.CaseSensitive {
		line = strings.ToLower(line)
	}
	if e.options.IgnoreWhitespace {
		line = strings.Join(strings.Fields(line), " ")
	}
	return line
}

// linesEqual compares two lines under the policy.
func (e *TextDiffEngine) linesEqual(left, right string) bool {
	l := e.normalize(left)
	r := e.normalize(right)
	if e.options.IgnoreBlankLines && strings.TrimSpace(l) == "" && strings.TrimSpace(r) == "" {
		return true
	}
	return l == r
}

// segmentFor classifies a skipped region: lines dropped on both sides
// form a Modified block, one-sided skips are Deleted or Added.
func segmentFor(leftSkip, rightSkip int) models.DiffSegment {
	switch {
	case leftSkip > 0 && rightSkip > 0:
		return models.DiffSegment{Kind: models.DiffModified, LeftCount: leftSkip, RightCount: rightSkip}
	case leftSkip > 0:
		return models.DiffSegment{Kind: models.DiffDeleted, LeftCount: leftSkip}
	default:
		return models.DiffSegment{Kind: models.DiffAdded, RightCount: rightSkip}
	}
}

// Compare aligns left against right. The concatenation of the returned
// segments reproduces both inputs in full.
func (e *TextDiffEngine) Compare(left, right []string) *TextDiff {
	result := &TextDiff{}
	i, j := 0, 0

	appendSegment := func(seg models.DiffSegment) {
		result.Segments = append(result.Segments, seg)
		switch seg.Kind {
		case models.DiffAdded:
			result.Stats.AddedLines += seg.RightCount
		case models.DiffDeleted:
			result.Stats.DeletedLines += seg.LeftCount
		case models.DiffModified:
			modified := seg.LeftCount
			if seg.RightCount > modified {
				modified = seg.RightCount
			}
			result.Stats.ModifiedLines += modified
		}
	}

	for i < len(left) || j < len(right) {
		// Extend an equal run as far as it goes
		run := 0
		for i+run < len(left) && j+run < len(right) && e.linesEqual(left[i+run], right[j+run]) {
			run++
		}
		if run > 0 {
			appendSegment(models.DiffSegment{Kind: models.DiffEqual, LeftCount: run, RightCount: run})
			i += run
			j += run
			continue
		}

		if i >= len(left) {
			appendSegment(models.DiffSegment{Kind: models.DiffAdded, RightCount: len(right) - j})
			j = len(right)
			continue
		}
		if j >= len(right) {
			appendSegment(models.DiffSegment{Kind: models.DiffDeleted, LeftCount: len(left) - i})
			i = len(left)
			continue
		}

		leftSkip, rightSkip, found := e.findRealignment(left[i:], right[j:])
		if !found {
			// Window exhausted: flush both tails as one terminal block
			appendSegment(segmentFor(len(left)-i, len(right)-j))
			i = len(left)
			j = len(right)
			continue
		}

		appendSegment(segmentFor(leftSkip, rightSkip))
		i += leftSkip
		j += rightSkip
	}

	return result
}

// findRealignment searches for the nearest matching line pair within
// the window, scanning candidate offsets in increasing Manhattan
// distance d = li+ri, li ascending within each d. Both offsets zero is
// excluded: the caller already knows the current lines differ.
func (e *TextDiffEngine) findRealignment(left, right []string) (int, int, bool) {
	leftWindow := len(left)
	if leftWindow > e.options.Window {
		leftWindow = e.options.Window
	}
	rightWindow := len(right)
	if rightWindow > e.options.Window {
		rightWindow = e.options.Window
	}

	maxDistance := leftWindow + rightWindow - 2
	for d := 1; d <= maxDistance; d++ {
		for li := 0; li <= d && li < leftWindow; li++ {
			ri := d - li
			if ri >= rightWindow {
				continue
			}
			if e.linesEqual(left[li], right[ri]) {
				return li, ri, true
			}
		}
	}

	return 0, 0, false
}
