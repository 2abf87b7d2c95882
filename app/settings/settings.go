package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PLANILLAS_PAGE_SIZE
// or PLANILLAS_CACHE_MAX_ENTRIES
const EnvPrefix = "PLANILLAS"

// FileName is the settings file looked up next to the executable and in
// the working directory
const FileName = "planillas.yml"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("variant", defaultSettings.Variant)
	v.SetDefault("page_size", defaultSettings.PageSize)
	v.SetDefault("debounce_ms", defaultSettings.DebounceMS)
	v.SetDefault("dataset.path", defaultSettings.Dataset.Path)
	v.SetDefault("dataset.glob", defaultSettings.Dataset.Glob)
	v.SetDefault("dataset.root", defaultSettings.Dataset.Root)
	v.SetDefault("dataset.rows_path", defaultSettings.Dataset.RowsPath)
	v.SetDefault("cache.enabled", defaultSettings.Cache.Enabled)
	v.SetDefault("cache.max_entries", defaultSettings.Cache.MaxEntries)
	v.SetDefault("log.level", defaultSettings.Log.Level)
	v.SetDefault("log.pretty", defaultSettings.Log.Pretty)
	v.SetDefault("export.sheet", defaultSettings.Export.Sheet)
	v.SetDefault("export.file_name", defaultSettings.Export.FileName)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads settings from path (when non-empty), then applies environment
// overrides on top of the defaults. A missing explicit file is an error; a
// missing default file is not.
func Load(path string) (Settings, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := executableDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// GetEffectiveSettings returns the effective settings (defaults overlaid
// with the default settings file and environment). If anything goes wrong,
// it returns defaults.
func GetEffectiveSettings() Settings {
	s, err := Load("")
	if err != nil {
		return defaultSettings
	}
	return s
}

// Validate rejects values the engine cannot run with
func (s Settings) Validate() error {
	switch {
	case s.PageSize <= 0:
		return fmt.Errorf("page_size must be positive, got %d", s.PageSize)
	case s.DebounceMS < 0:
		return fmt.Errorf("debounce_ms must not be negative, got %d", s.DebounceMS)
	case s.Cache.Enabled && s.Cache.MaxEntries <= 0:
		return fmt.Errorf("cache.max_entries must be positive when the cache is enabled, got %d", s.Cache.MaxEntries)
	case s.Dataset.Path != "" && s.Dataset.Glob != "":
		return fmt.Errorf("dataset.path and dataset.glob are mutually exclusive")
	}
	return nil
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
