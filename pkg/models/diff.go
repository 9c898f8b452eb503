package models

// DiffKind categorizes a run of lines between two sequences
type DiffKind string

const (
	// DiffEqual indicates lines present unchanged on both sides
	DiffEqual DiffKind = "equal"
	// DiffAdded indicates lines present only on the right side
	DiffAdded DiffKind = "added"
	// DiffDeleted indicates lines present only on the left side
	DiffDeleted DiffKind = "deleted"
	// DiffModified indicates a block of left lines replaced by a block
	// of right lines, possibly of different lengths
	DiffModified DiffKind = "modified"
)

// DiffSegment is a maximal run of lines with one classification.
// Concatenating all segments' LeftCount values reproduces the full left
// line count; RightCount likewise for the right.
type DiffSegment struct {
	// Kind is the change classification
	Kind DiffKind

	// LeftCount is the number of lines consumed on the left
	// (zero for DiffAdded)
	LeftCount int

	// RightCount is the number of lines consumed on the right
	// (zero for DiffDeleted)
	RightCount int
}

// DiffLine is one rendered row of a side-by-side pane
type DiffLine struct {
	// Number is the 1-based line number, 0 for placeholder rows
	Number int

	// Text is the line content, empty for placeholder rows
	Text string

	// Kind is the change classification of the row
	Kind DiffKind

	// Placeholder marks a blank padding row inserted to keep the two
	// panes vertically aligned
	Placeholder bool
}

// DiffStats summarizes a text diff for display
type DiffStats struct {
	AddedLines    int
	DeletedLines  int
	ModifiedLines int
}

// Identical reports whether the diff found no changes.
func (s DiffStats) Identical() bool {
	return s.AddedLines == 0 && s.DeletedLines == 0 && s.ModifiedLines == 0
}
