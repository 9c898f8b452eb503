package output

import (
	"io"
	"time"

	"github.com/twinpane/twinpane/pkg/diff"
	"github.com/twinpane/twinpane/pkg/models"
)

// CompareReport is the printable outcome of one directory comparison
type CompareReport struct {
	Left     string
	Right    string
	Entries  []*models.ComparisonEntry
	Counts   models.CompareCounts
	Status   models.RunStatus
	Duration time.Duration
}

// SyncReport is the printable outcome of one synchronization run
type SyncReport struct {
	Plan     *models.SyncPlan
	Status   models.RunStatus
	Duration time.Duration
	DryRun   bool
}

// DigestReport is the printable outcome of one checksum pass
type DigestReport struct {
	Results  []*models.DigestResult
	Match    *models.Algorithm // set when a verification input matched
	Status   models.RunStatus
	Duration time.Duration
}

// TextDiffReport is the printable outcome of one text comparison
type TextDiffReport struct {
	Left   string
	Right  string
	Panes  *diff.SideBySide
	Stats  models.DiffStats
	Window int
}

// BinaryDiffReport is the printable outcome of one binary comparison
type BinaryDiffReport struct {
	Left  string
	Right string
	Rows  []diff.BinaryRow
}

// Formatter renders engine results for one output mode.
// Implementations include human-readable and JSON formatters.
type Formatter interface {
	// Compare renders a directory comparison
	Compare(w io.Writer, report *CompareReport) error

	// Plan renders a synchronization plan before execution
	Plan(w io.Writer, plan *models.SyncPlan) error

	// Sync renders the outcome of an executed plan
	Sync(w io.Writer, report *SyncReport) error

	// Digest renders checksum results
	Digest(w io.Writer, report *DigestReport) error

	// TextDiff renders an aligned side-by-side text comparison
	TextDiff(w io.Writer, report *TextDiffReport) error

	// BinaryDiff renders a chunked hex comparison
	BinaryDiff(w io.Writer, report *BinaryDiffReport) error

	// Name returns the formatter name
	Name() string
}

// ByName returns the formatter registered under the given name.
func ByName(name string, color bool) Formatter {
	if name == "json" {
		return NewJSONFormatter()
	}
	return NewHumanFormatter(color)
}
