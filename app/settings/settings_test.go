package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// SettingsTestSuite runs every case from an empty working directory so no
// stray planillas.yml is picked up
type SettingsTestSuite struct {
	suite.Suite
	tempDir string
	origDir string
}

func TestSettingsSuite(t *testing.T) {
	suite.Run(t, new(SettingsTestSuite))
}

func (s *SettingsTestSuite) SetupTest() {
	var err error
	s.origDir, err = os.Getwd()
	require.NoError(s.T(), err)
	s.tempDir = s.T().TempDir()
	require.NoError(s.T(), os.Chdir(s.tempDir))
}

func (s *SettingsTestSuite) TearDownTest() {
	if s.origDir != "" {
		_ = os.Chdir(s.origDir)
	}
}

func (s *SettingsTestSuite) write(name, content string) string {
	path := filepath.Join(s.tempDir, name)
	require.NoError(s.T(), os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *SettingsTestSuite) TestDefaults() {
	got, err := Load("")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), Defaults(), got)
	assert.Equal(s.T(), 300*time.Millisecond, got.Debounce())
	assert.True(s.T(), got.CacheConfig().Enabled)
	assert.Equal(s.T(), 64, got.CacheConfig().MaxEntries)
}

func (s *SettingsTestSuite) TestFileOverridesDefaults() {
	path := s.write("custom.yaml", `
variant: estadistica
page_size: 50
cache:
  max_entries: 8
dataset:
  glob: "**/*.json.gz"
  root: data
  rows_path: $.data
`)
	got, err := Load(path)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "estadistica", got.Variant)
	assert.Equal(s.T(), 50, got.PageSize)
	assert.Equal(s.T(), 8, got.Cache.MaxEntries)
	assert.True(s.T(), got.Cache.Enabled, "unlisted keys keep defaults")
	assert.Equal(s.T(), "$.data", got.Dataset.RowsPath)
	assert.Equal(s.T(), "Datos Empleo", got.Export.Sheet)
}

func (s *SettingsTestSuite) TestDefaultFileInWorkingDirectory() {
	s.write(FileName, "debounce_ms: 0\n")
	got, err := Load("")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 0, got.DebounceMS)
}

func (s *SettingsTestSuite) TestEnvironmentOverrides() {
	s.T().Setenv("PLANILLAS_PAGE_SIZE", "25")
	s.T().Setenv("PLANILLAS_CACHE_ENABLED", "false")
	s.T().Setenv("PLANILLAS_LOG_LEVEL", "debug")

	got, err := Load("")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 25, got.PageSize)
	assert.False(s.T(), got.Cache.Enabled)
	assert.Equal(s.T(), "debug", got.Log.Level)
}

func (s *SettingsTestSuite) TestMissingExplicitFile() {
	_, err := Load(filepath.Join(s.tempDir, "nope.yaml"))
	assert.ErrorContains(s.T(), err, "failed to read settings file")
}

func (s *SettingsTestSuite) TestInvalidValues() {
	tests := map[string]string{
		"page_size: 0\n":                   "page_size must be positive",
		"debounce_ms: -1\n":                "debounce_ms must not be negative",
		"cache:\n  max_entries: 0\n":       "cache.max_entries must be positive",
		"dataset:\n  path: a\n  glob: b\n": "mutually exclusive",
	}
	for content, msg := range tests {
		path := s.write("bad.yaml", content)
		_, err := Load(path)
		assert.ErrorContains(s.T(), err, msg)
	}
}

func (s *SettingsTestSuite) TestEffectiveSettingsFallBackToDefaults() {
	s.write(FileName, "page_size: -5\n")
	assert.Equal(s.T(), Defaults(), GetEffectiveSettings())
}
