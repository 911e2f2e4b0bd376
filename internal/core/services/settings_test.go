package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/cdsupport/poscan/internal/adapters/driven/config/file"
)

func newTestSettings(t *testing.T) *SettingsService {
	t.Helper()
	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return NewSettingsService(store)
}

func TestSettingsService_Defaults(t *testing.T) {
	svc := newTestSettings(t)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, 4, settings.Workers)
	assert.Equal(t, "ttigroup.com.vn", settings.CorporateDomain)
	assert.NotEmpty(t, settings.IntakeDir)
	assert.NotEmpty(t, settings.FilingDir)
	assert.NotEmpty(t, settings.DataDir)
	assert.NotEmpty(t, settings.ExclusionFile)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	svc := newTestSettings(t)

	settings, err := svc.Get()
	require.NoError(t, err)

	dir := t.TempDir()
	settings.Workers = 8
	settings.IntakeDir = filepath.Join(dir, "in")
	settings.CorporateDomain = "example.com"
	require.NoError(t, svc.Save(settings))

	loaded, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.Workers)
	assert.Equal(t, filepath.Join(dir, "in"), loaded.IntakeDir)
	assert.Equal(t, "example.com", loaded.CorporateDomain)
}
