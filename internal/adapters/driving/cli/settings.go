package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the pipeline: worker pool size, directories, the
supplier exclusion file, and the corporate email domain.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWorkersCmd = &cobra.Command{
	Use:   "workers <count>",
	Short: "Set the worker pool size",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsWorkers,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWorkersCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Workers: %d\n", settings.Workers)
	cmd.Printf("  Corporate Domain: %s\n", settings.CorporateDomain)
	cmd.Println()

	cmd.Println("[Paths]")
	cmd.Printf("  Intake: %s\n", settings.IntakeDir)
	cmd.Printf("  Filing: %s\n", settings.FilingDir)
	cmd.Printf("  Data: %s\n", settings.DataDir)
	cmd.Printf("  Exclusion File: %s\n", settings.ExclusionFile)

	return nil
}

func runSettingsWorkers(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	count, err := strconv.Atoi(args[0])
	if err != nil || count < 1 {
		return fmt.Errorf("invalid worker count: %s", args[0])
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	settings.Workers = count
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Worker pool size set to %d.\n", count)
	return nil
}
