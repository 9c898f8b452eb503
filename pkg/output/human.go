package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/twinpane/twinpane/pkg/models"
)

// defaultTermWidth is used when the writer is not a terminal.
const defaultTermWidth = 80

// HumanFormatter renders results as readable, optionally colored text
type HumanFormatter struct {
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	cyan   *color.Color
	faint  *color.Color
}

// NewHumanFormatter creates a human-readable formatter.
func NewHumanFormatter(colored bool) *HumanFormatter {
	f := &HumanFormatter{
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		cyan:   color.New(color.FgCyan),
		faint:  color.New(color.Faint),
	}
	if !colored {
		for _, c := range []*color.Color{f.green, f.yellow, f.red, f.cyan, f.faint} {
			c.DisableColor()
		}
	}
	return f
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// width returns the terminal width of the writer, or a default.
func width(w io.Writer) int {
	if file, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(file.Fd())); err == nil && cols > 20 {
			return cols
		}
	}
	return defaultTermWidth
}

// Compare renders a directory comparison
func (f *HumanFormatter) Compare(w io.Writer, report *CompareReport) error {
	fmt.Fprintf(w, "Comparing %s <-> %s\n\n", report.Left, report.Right)

	for _, entry := range report.Entries {
		switch entry.Status {
		case models.StatusLeftOnly:
			f.green.Fprintf(w, "  <-  %s\n", entry.RelativePath)
		case models.StatusRightOnly:
			f.yellow.Fprintf(w, "  ->  %s\n", entry.RelativePath)
		case models.StatusDifferent:
			f.red.Fprintf(w, "  !=  %s\n", entry.RelativePath)
		case models.StatusIdentical:
			f.faint.Fprintf(w, "  ==  %s\n", entry.RelativePath)
		case models.StatusError:
			f.red.Fprintf(w, "  !!  %s: %s\n", entry.RelativePath, entry.Message)
		}
	}

	fmt.Fprintf(w, "\n%d left only, %d right only, %d different, %d identical, %d errors\n",
		report.Counts.LeftOnly, report.Counts.RightOnly, report.Counts.Different,
		report.Counts.Identical, report.Counts.Errors)
	fmt.Fprintf(w, "Completed in %s\n", report.Duration.Round(time.Millisecond))

	if report.Status == models.RunCancelled {
		f.yellow.Fprintln(w, "Comparison was cancelled; results above are partial.")
	}
	return nil
}

// actionLabel maps a planned action to its display form.
func actionLabel(action models.SyncAction) string {
	switch action {
	case models.ActionCopyRight:
		return "copy   ->"
	case models.ActionCopyLeft:
		return "copy   <-"
	case models.ActionUpdateRight:
		return "update ->"
	case models.ActionUpdateLeft:
		return "update <-"
	case models.ActionDeleteRight:
		return "delete ->"
	case models.ActionDeleteLeft:
		return "delete <-"
	default:
		return "none     "
	}
}

// Plan renders a synchronization plan before execution
func (f *HumanFormatter) Plan(w io.Writer, plan *models.SyncPlan) error {
	fmt.Fprintf(w, "Sync plan %s (%s)\n\n", plan.ID, plan.Direction)

	for _, item := range plan.Items {
		if item.Action == models.ActionNone {
			continue
		}
		label := actionLabel(item.Action)
		switch item.Action {
		case models.ActionDeleteLeft, models.ActionDeleteRight:
			f.red.Fprintf(w, "  %s  %s\n", label, item.RelativePath)
		case models.ActionUpdateLeft, models.ActionUpdateRight:
			f.yellow.Fprintf(w, "  %s  %s\n", label, item.RelativePath)
		default:
			f.green.Fprintf(w, "  %s  %s\n", label, item.RelativePath)
		}
	}

	fmt.Fprintf(w, "\n%d to copy, %d to update, %d to delete, %s to transfer\n",
		plan.Counts.ToCopy, plan.Counts.ToUpdate, plan.Counts.ToDelete,
		humanize.IBytes(uint64(plan.Counts.TotalBytes)))
	return nil
}

// Sync renders the outcome of an executed plan
func (f *HumanFormatter) Sync(w io.Writer, report *SyncReport) error {
	var done, failed, skipped int
	for _, item := range report.Plan.Items {
		switch item.Status {
		case models.ItemDone:
			done++
		case models.ItemError:
			failed++
			f.red.Fprintf(w, "  failed  %s: %s\n", item.RelativePath, item.Error)
		case models.ItemSkipped:
			skipped++
		}
	}

	if report.DryRun {
		f.cyan.Fprintln(w, "Dry run: no changes were made.")
	}
	fmt.Fprintf(w, "Sync %s in %s: %d done, %d failed, %d skipped\n",
		report.Status, report.Duration.Round(time.Millisecond), done, failed, skipped)
	return nil
}

// Digest renders checksum results
func (f *HumanFormatter) Digest(w io.Writer, report *DigestReport) error {
	for _, result := range report.Results {
		if result.Err != nil {
			f.red.Fprintf(w, "%s: %v\n", result.Path, result.Err)
			continue
		}

		fmt.Fprintf(w, "%s (%s)\n", result.Path, humanize.IBytes(uint64(result.Size)))
		for _, algo := range models.Algorithms() {
			if sum, ok := result.Sums[algo]; ok {
				fmt.Fprintf(w, "  %-6s  %s\n", algo, sum)
			}
		}
	}

	if report.Match != nil {
		f.green.Fprintf(w, "\nVerification matched (%s)\n", *report.Match)
	}
	if report.Status == models.RunCancelled {
		f.yellow.Fprintln(w, "Checksum pass was cancelled; results above are partial.")
	}
	return nil
}

// TextDiff renders an aligned side-by-side text comparison
func (f *HumanFormatter) TextDiff(w io.Writer, report *TextDiffReport) error {
	fmt.Fprintf(w, "--- %s\n+++ %s\n\n", report.Left, report.Right)

	// Two panes with line numbers share the terminal width
	paneWidth := (width(w) - 14) / 2
	if paneWidth < 10 {
		paneWidth = 10
	}

	for n := range report.Panes.Left {
		left := report.Panes.Left[n]
		right := report.Panes.Right[n]

		line := fmt.Sprintf("%s | %s", paneText(left, paneWidth), paneText(right, paneWidth))
		switch {
		case left.Kind == models.DiffEqual && right.Kind == models.DiffEqual:
			fmt.Fprintln(w, line)
		case left.Placeholder:
			f.green.Fprintln(w, line)
		case right.Placeholder:
			f.red.Fprintln(w, line)
		default:
			f.yellow.Fprintln(w, line)
		}
	}

	if report.Stats.Identical() {
		fmt.Fprintln(w, "\nFiles are identical.")
	} else {
		fmt.Fprintf(w, "\n%d added, %d deleted, %d modified\n",
			report.Stats.AddedLines, report.Stats.DeletedLines, report.Stats.ModifiedLines)
	}
	return nil
}

// paneText renders one pane cell with its line number, truncating long
// lines to the pane width.
func paneText(line models.DiffLine, paneWidth int) string {
	number := "    "
	if !line.Placeholder {
		number = fmt.Sprintf("%4d", line.Number)
	}

	text := line.Text
	if len(text) > paneWidth {
		text = text[:paneWidth]
	}
	return fmt.Sprintf("%s %-*s", number, paneWidth, text)
}

// BinaryDiff renders a chunked hex comparison
func (f *HumanFormatter) BinaryDiff(w io.Writer, report *BinaryDiffReport) error {
	fmt.Fprintf(w, "--- %s\n+++ %s\n\n", report.Left, report.Right)

	var differing int
	for _, row := range report.Rows {
		if !row.Differs {
			f.faint.Fprintf(w, "   %s\n", row.Left)
			continue
		}
		differing++
		if row.Left != "" {
			f.red.Fprintf(w, "<  %s\n", row.Left)
		}
		if row.Right != "" {
			f.green.Fprintf(w, ">  %s\n", row.Right)
		}
	}

	if differing == 0 {
		fmt.Fprintln(w, "\nFiles are identical.")
	} else {
		fmt.Fprintf(w, "\n%d of %d chunks differ\n", differing, len(report.Rows))
	}
	return nil
}
