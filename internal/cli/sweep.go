// filepath: internal/cli/sweep.go
package cli

import (
	"context"
	"mediacatalog/internal/housekeeping"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/services"
	"time"

	"github.com/spf13/cobra"
)

var sweepGrace time.Duration

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete uploaded images that no media item references",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSweep(cmd.Context(), sweepGrace)
	},
}

func init() {
	sweepCmd.Flags().DurationVar(&sweepGrace, "grace", housekeeping.DefaultGracePeriod, "Leave images younger than this alone")
}

func runSweep(ctx context.Context, grace time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	repo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	report, err := housekeeping.SweepOrphanedImages(ctx, housekeeping.Dependencies{
		Media:   repo,
		Storage: services.NewStorageService(cfg),
	}, grace)
	if err != nil {
		return err
	}
	logging.Log.Info(report.Message)
	return nil
}
