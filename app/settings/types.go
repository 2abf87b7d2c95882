package settings

import (
	"time"

	"planillas/app/cache"
)

// DatasetSettings locate the payroll payload
type DatasetSettings struct {
	// Path is a single dataset file (json, optionally gzip/bzip2/xz)
	Path string `mapstructure:"path" yaml:"path"`
	// Glob selects shard files below Root, e.g. "**/*.json.gz"
	Glob string `mapstructure:"glob" yaml:"glob"`
	Root string `mapstructure:"root" yaml:"root"`
	// RowsPath is a JSONPath to the rows array in a wrapped document
	RowsPath string `mapstructure:"rows_path" yaml:"rows_path"`
}

// CacheSettings configure the per-dashboard result cache
type CacheSettings struct {
	Enabled    bool `mapstructure:"enabled" yaml:"enabled"`
	MaxEntries int  `mapstructure:"max_entries" yaml:"max_entries"`
}

// LogSettings configure the process logger
type LogSettings struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// ExportSettings name the spreadsheet written by exports
type ExportSettings struct {
	Sheet    string `mapstructure:"sheet" yaml:"sheet"`
	FileName string `mapstructure:"file_name" yaml:"file_name"`
}

// Settings holds runtime settings that can be overridden by a settings
// file or PLANILLAS_* environment variables.
type Settings struct {
	// Variant is an embedded variant name or a path to a variant yaml file
	Variant    string          `mapstructure:"variant" yaml:"variant"`
	PageSize   int             `mapstructure:"page_size" yaml:"page_size"`
	DebounceMS int             `mapstructure:"debounce_ms" yaml:"debounce_ms"`
	Dataset    DatasetSettings `mapstructure:"dataset" yaml:"dataset"`
	Cache      CacheSettings   `mapstructure:"cache" yaml:"cache"`
	Log        LogSettings     `mapstructure:"log" yaml:"log"`
	Export     ExportSettings  `mapstructure:"export" yaml:"export"`
}

// defaultSettings defines the built-in defaults.
var defaultSettings = Settings{
	Variant:    "muni",
	PageSize:   100,
	DebounceMS: 300,
	Cache: CacheSettings{
		Enabled:    true,
		MaxEntries: cache.DefaultMaxEntries,
	},
	Log: LogSettings{Level: "info"},
	Export: ExportSettings{
		Sheet:    "Datos Empleo",
		FileName: "empleo_rapido_export.xlsx",
	},
}

// Defaults returns a copy of the built-in defaults
func Defaults() Settings {
	return defaultSettings
}

// Debounce returns the search quiet period
func (s Settings) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// CacheConfig converts the cache section for cache.FromConfig
func (s Settings) CacheConfig() cache.Config {
	return cache.Config{Enabled: s.Cache.Enabled, MaxEntries: s.Cache.MaxEntries}
}
