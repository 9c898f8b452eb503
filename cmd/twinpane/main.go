package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twinpane/twinpane/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	// The first interrupt cancels the running engines, which finish
	// with partial results. A second interrupt kills the process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "twinpane",
		Short: "Dual-pane directory comparison and synchronization",
		Long: `twinpane compares, diffs, and synchronizes directory trees the way a
dual-pane file manager does: it tells you what exists on one side only,
what differs and how, and moves only what you ask it to.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", cli.Version, cli.Commit, cli.BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.NewCompareCommand())
	rootCmd.AddCommand(cli.NewDiffCommand())
	rootCmd.AddCommand(cli.NewSyncCommand())
	rootCmd.AddCommand(cli.NewChecksumCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.ExecuteContext(ctx)
}
