package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/twinpane/twinpane/pkg/logging"
	"github.com/twinpane/twinpane/pkg/models"
	"github.com/twinpane/twinpane/pkg/output"
	"github.com/twinpane/twinpane/pkg/ratelimit"
	"github.com/twinpane/twinpane/pkg/syncer"
)

// syncFlags holds sync command flag values
type syncFlags struct {
	Direction     string
	Delete        bool
	CompareSize   bool
	CaseSensitive bool
	NoRecurse     bool
	DryRun        bool
	Yes           bool
	Workers       int
	BandwidthKBs  int64
	Include       []string
	Exclude       []string
}

var sFlags syncFlags

// NewSyncCommand creates the sync command
func NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync LEFT RIGHT",
		Short: "Synchronize two directory trees",
		Long: `Plan and execute a synchronization between LEFT and RIGHT. The plan
is shown first; nothing is transferred until it is confirmed, unless
--yes or --dry-run is given. Deletions never happen without --delete.`,
		Args: cobra.ExactArgs(2),
		RunE: runSync,
	}

	cmd.Flags().StringVarP(&sFlags.Direction, "direction", "d", "", "sync direction: left-to-right, right-to-left, bidirectional")
	cmd.Flags().BoolVar(&sFlags.Delete, "delete", false, "delete entries missing from the authoritative side")
	cmd.Flags().BoolVar(&sFlags.CompareSize, "compare-size", false, "also update when sizes differ despite equal timestamps")
	cmd.Flags().BoolVar(&sFlags.CaseSensitive, "case-sensitive", false, "match names case-sensitively")
	cmd.Flags().BoolVar(&sFlags.NoRecurse, "no-recurse", false, "synchronize the top level only")
	cmd.Flags().BoolVarP(&sFlags.DryRun, "dry-run", "n", false, "show the plan without executing it")
	cmd.Flags().BoolVarP(&sFlags.Yes, "yes", "y", false, "execute without asking for confirmation")
	cmd.Flags().IntVar(&sFlags.Workers, "workers", 0, "number of concurrent transfers (default from config)")
	cmd.Flags().Int64Var(&sFlags.BandwidthKBs, "bwlimit", 0, "bandwidth limit in KiB/s, 0 for unlimited")
	cmd.Flags().StringSliceVar(&sFlags.Include, "include", nil, "glob patterns of files to include")
	cmd.Flags().StringSliceVar(&sFlags.Exclude, "exclude", nil, "glob patterns to exclude")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	direction := cfg.Sync.Direction
	if sFlags.Direction != "" {
		direction = models.SyncDirection(sFlags.Direction)
		switch direction {
		case models.DirectionLeftToRight, models.DirectionRightToLeft, models.DirectionBidirectional:
		default:
			return fmt.Errorf("unknown direction: %s (use: left-to-right, right-to-left, bidirectional)", sFlags.Direction)
		}
	}

	include := cfg.Include
	if len(sFlags.Include) > 0 {
		include = sFlags.Include
	}
	exclude := cfg.Exclude
	if len(sFlags.Exclude) > 0 {
		exclude = sFlags.Exclude
	}

	plannerOptions := syncer.PlannerOptions{
		Direction:        direction,
		DeleteExtraneous: cfg.Sync.DeleteExtraneous || sFlags.Delete,
		CompareBySize:    cfg.Sync.CompareBySize || sFlags.CompareSize,
		CaseSensitive:    sFlags.CaseSensitive,
		Scan: syncer.ScanOptions{
			Recurse: !sFlags.NoRecurse,
			Include: include,
			Exclude: exclude,
		},
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

	plan, err := syncer.NewPlanner(left, right, plannerOptions).Plan(ctx)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	logger = logger.WithFields(logging.Fields{"operation": plan.ID, "command": "sync"})
	logger.Info("plan computed", logging.Fields{
		"direction": string(direction),
		"to_copy":   plan.Counts.ToCopy,
		"to_update": plan.Counts.ToUpdate,
		"to_delete": plan.Counts.ToDelete,
		"bytes":     plan.Counts.TotalBytes,
	})

	formatter := newFormatter(cfg)
	if !cfg.Output.Quiet && cfg.Output.Format != "json" {
		if err := formatter.Plan(os.Stdout, plan); err != nil {
			return fmt.Errorf("failed to render plan: %w", err)
		}
	}

	if plan.Counts.ToCopy+plan.Counts.ToUpdate+plan.Counts.ToDelete == 0 {
		if !cfg.Output.Quiet && cfg.Output.Format != "json" {
			fmt.Println("Nothing to do.")
		}
		if cfg.Output.Format == "json" {
			report := &output.SyncReport{Plan: plan, Status: models.RunCompleted, DryRun: sFlags.DryRun}
			return formatter.Sync(os.Stdout, report)
		}
		return nil
	}

	if !sFlags.DryRun && !sFlags.Yes && cfg.Output.Format != "json" {
		if !confirm("Execute this plan?") {
			fmt.Println("Aborted.")
			os.Exit(3)
		}
	}

	workers := cfg.Performance.MaxWorkers
	if sFlags.Workers > 0 {
		workers = sFlags.Workers
	}
	bandwidth := cfg.Performance.BandwidthLimit
	if sFlags.BandwidthKBs > 0 {
		bandwidth = sFlags.BandwidthKBs * 1024
	}

	var bar *output.Progress
	if showProgress(cfg) {
		bar = output.NewItemProgress(os.Stderr, plan.Counts.ToCopy+plan.Counts.ToUpdate+plan.Counts.ToDelete)
	}

	executor := syncer.NewExecutor(left, right, syncer.ExecutorOptions{
		Workers: workers,
		DryRun:  sFlags.DryRun,
		Limiter: ratelimit.NewLimiter(bandwidth),
		Progress: func(completed, total int, item *models.SyncItem) {
			bar.Increment()
			if item.Status == models.ItemError {
				logger.Error("item failed", nil, logging.Fields{"path": item.RelativePath, "detail": item.Error})
			} else {
				logger.Debug("item settled", logging.Fields{"path": item.RelativePath, "status": string(item.Status)})
			}
		},
	})

	started := time.Now()
	status := executor.Run(ctx, plan)
	bar.Finish()

	logger.Info("sync finished", logging.Fields{"status": string(status)})

	report := &output.SyncReport{
		Plan:     plan,
		Status:   status,
		Duration: time.Since(started),
		DryRun:   sFlags.DryRun,
	}
	if !cfg.Output.Quiet || cfg.Output.Format == "json" {
		if err := formatter.Sync(os.Stdout, report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}

	os.Exit(status.ExitCode())
	return nil
}

// confirm asks a yes/no question on the terminal.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
