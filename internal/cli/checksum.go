package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/twinpane/twinpane/internal/platform"
	"github.com/twinpane/twinpane/pkg/digest"
	"github.com/twinpane/twinpane/pkg/logging"
	"github.com/twinpane/twinpane/pkg/models"
	"github.com/twinpane/twinpane/pkg/output"
	"github.com/twinpane/twinpane/pkg/ratelimit"
)

// checksumFlags holds checksum command flag values
type checksumFlags struct {
	Algorithms []string
	Uppercase  bool
	Verify     string
}

var ckFlags checksumFlags

// NewChecksumCommand creates the checksum command
func NewChecksumCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checksum FILE...",
		Short: "Compute file checksums",
		Long: `Compute one or more digests over each named file. With --verify, the
given hex digest is checked against every computed sum and the first
match is reported.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runChecksum,
	}

	cmd.Flags().StringSliceVarP(&ckFlags.Algorithms, "algo", "a", nil, "algorithms: crc32, md5, sha1, sha256, sha512 (default from config)")
	cmd.Flags().BoolVarP(&ckFlags.Uppercase, "uppercase", "u", false, "print digests in upper-case hex")
	cmd.Flags().StringVar(&ckFlags.Verify, "verify", "", "hex digest to verify against the computed sums")

	return cmd
}

func runChecksum(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(ckFlags.Algorithms) > 0 {
		cfg.Digest.Algorithms = ckFlags.Algorithms
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if ckFlags.Uppercase {
		cfg.Digest.Uppercase = true
	}

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		if err := platform.ValidatePath(arg); err != nil {
			return err
		}
		paths = append(paths, platform.NormalizePath(arg))
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()
	logger = logger.WithFields(logging.Fields{"operation": uuid.New().String(), "command": "checksum"})

	var bar *output.Progress
	if showProgress(cfg) && len(paths) > 1 {
		bar = output.NewItemProgress(os.Stderr, len(paths))
	}

	options := []digest.Option{
		digest.WithUppercase(cfg.Digest.Uppercase),
		digest.WithProgress(func(percent int, path string) {
			bar.Increment()
			logger.Debug("file digested", logging.Fields{"path": path, "percent": percent})
		}),
	}
	if cfg.Performance.BandwidthLimit > 0 {
		limiter := ratelimit.NewLimiter(cfg.Performance.BandwidthLimit)
		options = append(options, digest.WithReaderWrapper(func(rc io.ReadCloser) io.ReadCloser {
			return ratelimit.NewReadCloser(ctx, rc, limiter)
		}))
	}

	engine := digest.NewEngine(options...)

	started := time.Now()
	results, status := engine.ComputeBatch(ctx, paths, cfg.Algorithms())
	bar.Finish()

	logger.Info("checksum finished", logging.Fields{"status": string(status), "files": len(results)})

	report := &output.DigestReport{
		Results:  results,
		Status:   status,
		Duration: time.Since(started),
	}

	if ckFlags.Verify != "" {
		if match := digest.Verify(ckFlags.Verify, results); match != nil {
			report.Match = &match.Algorithm
		}
	}

	if err := newFormatter(cfg).Digest(os.Stdout, report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if ckFlags.Verify != "" && report.Match == nil && status == models.RunCompleted {
		fmt.Fprintln(os.Stderr, "Verification failed: no computed digest matches.")
		os.Exit(1)
	}

	os.Exit(status.ExitCode())
	return nil
}
