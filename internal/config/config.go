// Package config handles configuration loading using viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/avnixm/pcapsum/internal/core"
)

// Config is the top-level configuration.
// Maps to the `pcapsum:` root key in YAML; env vars use the PCAPSUM_ prefix
// (e.g. PCAPSUM_ANALYZER_PACKET_LIMIT).
type Config struct {
	Analyzer AnalyzerConfig `mapstructure:"analyzer"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
}

// AnalyzerConfig contains scan defaults; CLI flags override per invocation.
type AnalyzerConfig struct {
	PacketLimit uint `mapstructure:"packet_limit"`
	IncludeHex  bool `mapstructure:"include_hex"`
}

// OutputConfig contains report rendering settings.
type OutputConfig struct {
	Pretty bool `mapstructure:"pretty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string           `mapstructure:"level"`  // debug / info / warn / error
	Format string           `mapstructure:"format"` // json / text
	File   FileOutputConfig `mapstructure:"file"`
}

// FileOutputConfig configures optional file log output.
type FileOutputConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Path     string         `mapstructure:"path"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	MaxBackups int  `mapstructure:"max_backups"`
	Compress   bool `mapstructure:"compress"`
}

// configRoot is the top-level wrapper matching the YAML structure `pcapsum: ...`.
type configRoot struct {
	Pcapsum Config `mapstructure:"pcapsum"`
}

// Load loads configuration from file. An empty path loads pure defaults plus
// environment overrides, so the tool runs without any config file present.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// The `pcapsum.` key prefix maps to PCAPSUM_ env vars via the key
	// replacer (key "pcapsum.log.level" → env "PCAPSUM_LOG_LEVEL").
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Pcapsum

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default values for configuration.
// All keys use the "pcapsum." prefix to match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("pcapsum.analyzer.packet_limit", 200)
	v.SetDefault("pcapsum.analyzer.include_hex", false)

	v.SetDefault("pcapsum.output.pretty", true)

	v.SetDefault("pcapsum.log.level", "warn")
	v.SetDefault("pcapsum.log.format", "text")
	v.SetDefault("pcapsum.log.file.enabled", false)
	v.SetDefault("pcapsum.log.file.path", "")
	v.SetDefault("pcapsum.log.file.rotation.max_size_mb", 50)
	v.SetDefault("pcapsum.log.file.rotation.max_age_days", 14)
	v.SetDefault("pcapsum.log.file.rotation.max_backups", 3)
	v.SetDefault("pcapsum.log.file.rotation.compress", true)
}

// ValidateAndApplyDefaults validates configuration and applies runtime defaults.
func (cfg *Config) ValidateAndApplyDefaults() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("%w: log level %q (must be debug/info/warn/error)",
			core.ErrConfigInvalid, cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("%w: log format %q (must be json/text)",
			core.ErrConfigInvalid, cfg.Log.Format)
	}
	if cfg.Analyzer.PacketLimit == 0 {
		cfg.Analyzer.PacketLimit = 1
	}
	if cfg.Log.File.Enabled && cfg.Log.File.Path == "" {
		return fmt.Errorf("%w: log.file.path is required when log.file.enabled=true",
			core.ErrConfigInvalid)
	}
	return nil
}
