package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twinpane/twinpane/internal/platform"
	"github.com/twinpane/twinpane/pkg/diff"
	"github.com/twinpane/twinpane/pkg/output"
)

// diffFlags holds diff command flag values
type diffFlags struct {
	Binary           bool
	IgnoreCase       bool
	IgnoreWhitespace bool
	IgnoreBlankLines bool
	Window           int
}

var dFlags diffFlags

// NewDiffCommand creates the diff command
func NewDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff LEFT RIGHT",
		Short: "Compare two files line by line or as hex",
		Long: `Compare the files LEFT and RIGHT and show an aligned side-by-side
view. Text mode realigns around insertions and deletions; binary mode
shows fixed-size hex chunks.`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}

	cmd.Flags().BoolVar(&dFlags.Binary, "binary", false, "compare as binary hex chunks")
	cmd.Flags().BoolVar(&dFlags.IgnoreCase, "ignore-case", false, "ignore letter case when matching lines")
	cmd.Flags().BoolVarP(&dFlags.IgnoreWhitespace, "ignore-whitespace", "w", false, "ignore whitespace differences within lines")
	cmd.Flags().BoolVarP(&dFlags.IgnoreBlankLines, "ignore-blank-lines", "B", false, "treat blank lines as equal")
	cmd.Flags().IntVar(&dFlags.Window, "window", 0, "realignment search window in lines (default from config)")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	for _, path := range args {
		if err := platform.ValidatePath(path); err != nil {
			return err
		}
	}
	leftPath := platform.NormalizePath(args[0])
	rightPath := platform.NormalizePath(args[1])

	formatter := newFormatter(cfg)

	if dFlags.Binary {
		return runBinaryDiff(cmd, formatter, leftPath, rightPath)
	}

	leftContent, err := os.ReadFile(leftPath)
	if err != nil {
		return fmt.Errorf("failed to read left file: %w", err)
	}
	rightContent, err := os.ReadFile(rightPath)
	if err != nil {
		return fmt.Errorf("failed to read right file: %w", err)
	}

	window := cfg.Diff.Window
	if dFlags.Window > 0 {
		window = dFlags.Window
	}

	options := diff.TextOptions{
		CaseSensitive:    !cfg.Diff.IgnoreCase,
		IgnoreWhitespace: cfg.Diff.IgnoreWhitespace,
		IgnoreBlankLines: cfg.Diff.IgnoreBlankLines,
		Window:           window,
	}
	if dFlags.IgnoreCase {
		options.CaseSensitive = false
	}
	if dFlags.IgnoreWhitespace {
		options.IgnoreWhitespace = true
	}
	if dFlags.IgnoreBlankLines {
		options.IgnoreBlankLines = true
	}

	leftLines := diff.SplitLines(string(leftContent))
	rightLines := diff.SplitLines(string(rightContent))

	result := diff.NewTextDiffEngine(options).Compare(leftLines, rightLines)

	report := &output.TextDiffReport{
		Left:   leftPath,
		Right:  rightPath,
		Panes:  diff.Render(leftLines, rightLines, result.Segments),
		Stats:  result.Stats,
		Window: window,
	}
	if err := formatter.TextDiff(os.Stdout, report); err != nil {
		return fmt.Errorf("failed to render diff: %w", err)
	}

	if !result.Stats.Identical() {
		os.Exit(1)
	}
	return nil
}

func runBinaryDiff(cmd *cobra.Command, formatter output.Formatter, leftPath, rightPath string) error {
	left, err := os.Open(leftPath)
	if err != nil {
		return fmt.Errorf("failed to open left file: %w", err)
	}
	defer left.Close()

	right, err := os.Open(rightPath)
	if err != nil {
		return fmt.Errorf("failed to open right file: %w", err)
	}
	defer right.Close()

	rows, err := diff.NewBinaryDiffEngine().Compare(cmd.Context(), left, right)
	if err != nil {
		return fmt.Errorf("binary comparison failed: %w", err)
	}

	report := &output.BinaryDiffReport{Left: leftPath, Right: rightPath, Rows: rows}
	if err := formatter.BinaryDiff(os.Stdout, report); err != nil {
		return fmt.Errorf("failed to render diff: %w", err)
	}

	for _, row := range rows {
		if row.Differs {
			os.Exit(1)
		}
	}
	return nil
}
