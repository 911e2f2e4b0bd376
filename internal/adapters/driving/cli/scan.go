package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cdsupport/poscan/internal/core/ports/driving"
)

var watchIntake bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Process the intake directory",
	Long: `Runs one pipeline pass over the intake directory: every document is
extracted, classified, recorded in the ledger, and filed if it needs
declaration support.

With --watch, poscan stays running and triggers a new pass whenever a
document lands in the intake directory. Stop it with Ctrl-C.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&watchIntake, "watch", "w", false, "keep running and rescan on new documents")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	if scanService == nil {
		return errors.New("scan service not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runOnce(ctx, cmd); err != nil {
		return err
	}
	if !watchIntake {
		return nil
	}

	if intakeConn == nil {
		return errors.New("intake not configured")
	}
	events, err := intakeConn.Watch(ctx)
	if err != nil {
		return fmt.Errorf("starting watch: %w", err)
	}

	cmd.Println("Watching intake directory. Press Ctrl-C to stop.")
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := runOnce(ctx, cmd); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		}
	}
}

func runOnce(ctx context.Context, cmd *cobra.Command) error {
	report, err := scanService.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	printReport(cmd, report)
	return nil
}

func printReport(cmd *cobra.Command, report *driving.ScanReport) {
	cmd.Printf("Run %s\n", report.RunID)
	cmd.Printf("  Processed: %d\n", report.Processed)
	cmd.Printf("  Failed:    %d\n", report.Failed)
	cmd.Printf("  Required:  %d\n", report.Required)
	cmd.Printf("  Revised:   %d\n", report.Revised)
	cmd.Printf("  Filed:     %d\n", report.Filed)
	cmd.Printf("  Merged:    %d\n", report.Merged)
}
