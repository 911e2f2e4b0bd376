package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cdsupport/poscan/internal/core/domain"
	"github.com/cdsupport/poscan/internal/core/ports/driven"
)

// Config keys for settings storage.
const (
	keyWorkers         = "pipeline.workers"
	keyIntakeDir       = "paths.intake_dir"
	keyFilingDir       = "paths.filing_dir"
	keyDataDir         = "paths.data_dir"
	keyExclusionFile   = "paths.exclusion_file"
	keyCorporateDomain = "pipeline.corporate_domain"
)

// SettingsService resolves application settings from the config store,
// filling in defaults for anything unset.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Unset directory paths
// resolve to subdirectories of ~/.poscan.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Workers:         s.getInt(keyWorkers, defaults.Workers),
		IntakeDir:       s.configStore.GetString(keyIntakeDir),
		FilingDir:       s.configStore.GetString(keyFilingDir),
		DataDir:         s.configStore.GetString(keyDataDir),
		ExclusionFile:   s.configStore.GetString(keyExclusionFile),
		CorporateDomain: s.getString(keyCorporateDomain, defaults.CorporateDomain),
	}

	if settings.IntakeDir == "" || settings.FilingDir == "" || settings.DataDir == "" || settings.ExclusionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		base := filepath.Join(home, ".poscan")
		if settings.IntakeDir == "" {
			settings.IntakeDir = filepath.Join(base, "intake")
		}
		if settings.FilingDir == "" {
			settings.FilingDir = filepath.Join(base, "filed")
		}
		if settings.DataDir == "" {
			settings.DataDir = filepath.Join(base, "data")
		}
		if settings.ExclusionFile == "" {
			settings.ExclusionFile = filepath.Join(base, "non_cds_suppliers.csv")
		}
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyWorkers, settings.Workers); err != nil {
		return fmt.Errorf("save workers: %w", err)
	}
	if err := s.configStore.Set(keyIntakeDir, settings.IntakeDir); err != nil {
		return fmt.Errorf("save intake_dir: %w", err)
	}
	if err := s.configStore.Set(keyFilingDir, settings.FilingDir); err != nil {
		return fmt.Errorf("save filing_dir: %w", err)
	}
	if err := s.configStore.Set(keyDataDir, settings.DataDir); err != nil {
		return fmt.Errorf("save data_dir: %w", err)
	}
	if err := s.configStore.Set(keyExclusionFile, settings.ExclusionFile); err != nil {
		return fmt.Errorf("save exclusion_file: %w", err)
	}
	if err := s.configStore.Set(keyCorporateDomain, settings.CorporateDomain); err != nil {
		return fmt.Errorf("save corporate_domain: %w", err)
	}
	return nil
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return fallback
}
