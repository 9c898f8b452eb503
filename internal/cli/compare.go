package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/twinpane/twinpane/pkg/compare"
	"github.com/twinpane/twinpane/pkg/logging"
	"github.com/twinpane/twinpane/pkg/models"
	"github.com/twinpane/twinpane/pkg/output"
)

// compareFlags holds compare command flag values
type compareFlags struct {
	BySize        bool
	ByDate        bool
	ByContent     bool
	Tolerance     int
	CaseSensitive bool
	ShowIdentical bool
	NoRecurse     bool
}

var cmpFlags compareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare LEFT RIGHT",
		Short: "Compare two directory trees",
		Long: `Compare the directories LEFT and RIGHT and report which entries exist
on only one side, which differ, and optionally which are identical.
No file is ever modified.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().BoolVar(&cmpFlags.BySize, "by-size", true, "treat files with different sizes as different")
	cmd.Flags().BoolVar(&cmpFlags.ByDate, "by-date", true, "treat files with different modification times as different")
	cmd.Flags().BoolVar(&cmpFlags.ByContent, "by-content", false, "compare file content byte by byte")
	cmd.Flags().IntVar(&cmpFlags.Tolerance, "tolerance", -1, "timestamp tolerance in seconds (default from config)")
	cmd.Flags().BoolVar(&cmpFlags.CaseSensitive, "case-sensitive", false, "match names case-sensitively")
	cmd.Flags().BoolVar(&cmpFlags.ShowIdentical, "show-identical", false, "also report identical entries")
	cmd.Flags().BoolVar(&cmpFlags.NoRecurse, "no-recurse", false, "compare the top level only")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	policy := compare.Policy{
		BySize:        cfg.Compare.BySize,
		ByDate:        cfg.Compare.ByDate,
		ByContent:     cfg.Compare.ByContent,
		DateTolerance: time.Duration(cfg.Compare.DateToleranceSeconds) * time.Second,
	}
	options := compare.Options{
		Recurse:       cfg.Compare.Recurse,
		CaseSensitive: cfg.Compare.CaseSensitive,
		ShowIdentical: cfg.Compare.ShowIdentical,
	}

	if cmd.Flags().Changed("by-size") {
		policy.BySize = cmpFlags.BySize
	}
	if cmd.Flags().Changed("by-date") {
		policy.ByDate = cmpFlags.ByDate
	}
	if cmd.Flags().Changed("by-content") {
		policy.ByContent = cmpFlags.ByContent
	}
	if cmpFlags.Tolerance >= 0 {
		policy.DateTolerance = time.Duration(cmpFlags.Tolerance) * time.Second
	}
	if cmd.Flags().Changed("case-sensitive") {
		options.CaseSensitive = cmpFlags.CaseSensitive
	}
	if cmd.Flags().Changed("show-identical") {
		options.ShowIdentical = cmpFlags.ShowIdentical
	}
	if cmpFlags.NoRecurse {
		options.Recurse = false
	}

	left, right, err := openPanes(args[0], args[1])
	if err != nil {
		return err
	}
	defer left.Close()
	defer right.Close()

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()
	logger = logger.WithFields(logging.Fields{"operation": uuid.New().String(), "command": "compare"})

	logger.Info("comparison started", logging.Fields{"left": left.Root(), "right": right.Root()})
	started := time.Now()

	comparator := compare.NewDirectoryComparator(left, right, compare.NewFileComparator(policy), options)

	var entries []*models.ComparisonEntry
	for entry := range comparator.Run(ctx) {
		entries = append(entries, entry)
		if entry.Status == models.StatusError {
			logger.Warn("entry could not be compared", logging.Fields{
				"path":    entry.RelativePath,
				"message": entry.Message,
			})
		}
	}

	counts, status := comparator.Summary()
	logger.Info("comparison finished", logging.Fields{
		"status":    string(status),
		"entries":   counts.Total(),
		"different": counts.Different,
	})

	report := &output.CompareReport{
		Left:     left.Root(),
		Right:    right.Root(),
		Entries:  entries,
		Counts:   counts,
		Status:   status,
		Duration: time.Since(started),
	}

	if !cfg.Output.Quiet || cfg.Output.Format == "json" {
		if err := newFormatter(cfg).Compare(os.Stdout, report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}

	os.Exit(status.ExitCode())
	return nil
}
