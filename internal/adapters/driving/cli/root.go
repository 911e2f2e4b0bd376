// Package cli provides the poscan command line interface.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/cdsupport/poscan/internal/adapters/driven/config/file"
	errorsinkfile "github.com/cdsupport/poscan/internal/adapters/driven/errorsink/file"
	exclusionsfile "github.com/cdsupport/poscan/internal/adapters/driven/exclusions/file"
	"github.com/cdsupport/poscan/internal/adapters/driven/filing"
	shardfile "github.com/cdsupport/poscan/internal/adapters/driven/shard/file"
	"github.com/cdsupport/poscan/internal/adapters/driven/storage/sqlite"
	"github.com/cdsupport/poscan/internal/connectors/intake"
	"github.com/cdsupport/poscan/internal/core/ports/driven"
	"github.com/cdsupport/poscan/internal/core/ports/driving"
	"github.com/cdsupport/poscan/internal/core/services"
	"github.com/cdsupport/poscan/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired by initServices. Tests swap these for fakes.
var (
	scanService     driving.Scanner
	ledgerStore     driven.LedgerStore
	filerService    driven.Filer
	intakeConn      driven.Intake
	settingsService *services.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "poscan",
	Short: "Classify purchase orders for customs declaration support",
	Long: `poscan scans incoming purchase order documents, extracts their
commercial fields, decides which ones need a customs declaration
sheet, and keeps a ledger of every PO it has seen.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute wires the default adapters and runs the root command.
func Execute() error {
	if err := initServices(); err != nil {
		return err
	}
	return rootCmd.Execute()
}

// initServices builds the production dependency graph from
// configuration.
func initServices() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settingsService = services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("resolving settings: %w", err)
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening ledger store: %w", err)
	}
	ledgerStore = store.LedgerStore()

	shardStore, err := shardfile.NewShardStore(filepath.Join(settings.DataDir, "shards"))
	if err != nil {
		return fmt.Errorf("opening shard store: %w", err)
	}

	filer, err := filing.NewFiler(settings.FilingDir)
	if err != nil {
		return fmt.Errorf("opening filing root: %w", err)
	}
	filerService = filer

	sink, err := errorsinkfile.NewSink(filepath.Join(settings.DataDir, "error.log"))
	if err != nil {
		return fmt.Errorf("opening error log: %w", err)
	}

	conn, err := intake.NewConnector(settings.IntakeDir)
	if err != nil {
		return fmt.Errorf("opening intake: %w", err)
	}
	intakeConn = conn

	exclusions, err := exclusionsfile.NewSource(settings.ExclusionFile).Load(context.Background())
	if err != nil {
		return fmt.Errorf("loading exclusions: %w", err)
	}

	scanService = services.NewScanner(
		conn,
		ledgerStore,
		shardStore,
		filer,
		sink,
		services.NewExtractor(settings.CorporateDomain),
		services.NewClassifier(exclusions),
		settings.Workers,
	)

	return nil
}
