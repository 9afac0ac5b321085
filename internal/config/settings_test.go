package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	chdirForTest(t, t.TempDir())

	settings, err := LoadSettings(SettingsOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), *settings)
	assert.Equal(t, domain.Month(0), settings.Month())
}

func TestLoadSettings_File(t *testing.T) {
	settings, err := LoadSettings(SettingsOptions{ConfigFile: "testdata/settings.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, "json", settings.Format)
	assert.Equal(t, "ARS", settings.Currency)
	assert.Equal(t, domain.Month(6), settings.Month())
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	t.Setenv("CYCLEPLAN_FORMAT", "CSV")
	t.Setenv("CYCLEPLAN_CURRENT_MONTH", "9")

	settings, err := LoadSettings(SettingsOptions{ConfigFile: "testdata/settings.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "csv", settings.Format)
	assert.Equal(t, domain.Month(9), settings.Month())
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestLoadSettings_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CYCLEPLAN_LOG_LEVEL=error\n"), 0o600))
	t.Setenv("CYCLEPLAN_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("CYCLEPLAN_LOG_LEVEL"))
	chdirForTest(t, dir)

	settings, err := LoadSettings(SettingsOptions{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "error", settings.LogLevel)
}

func TestLoadSettings_Errors(t *testing.T) {
	_, err := LoadSettings(SettingsOptions{ConfigFile: "testdata/absent.yaml"})
	require.Error(t, err)
	assert.True(t, ierr.IsConfiguration(err))

	_, err = LoadSettings(SettingsOptions{EnvFile: "testdata/absent.env"})
	require.Error(t, err)
	assert.True(t, ierr.IsConfiguration(err))

	t.Setenv("CYCLEPLAN_FORMAT", "pdf")
	_, err = LoadSettings(SettingsOptions{ConfigFile: "testdata/settings.yaml"})
	require.Error(t, err)
	assert.True(t, ierr.IsConfiguration(err))
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
