package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avnixm/pcapsum/internal/config"
	"github.com/avnixm/pcapsum/internal/core"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, uint(200), cfg.Analyzer.PacketLimit)
	assert.False(t, cfg.Analyzer.IncludeHex)
	assert.True(t, cfg.Output.Pretty)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Log.File.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
pcapsum:
  analyzer:
    packet_limit: 50
    include_hex: true
  output:
    pretty: false
  log:
    level: debug
    format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint(50), cfg.Analyzer.PacketLimit)
	assert.True(t, cfg.Analyzer.IncludeHex)
	assert.False(t, cfg.Output.Pretty)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
pcapsum:
  analyzer:
    packet_limit: 1000
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint(1000), cfg.Analyzer.PacketLimit)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	path := writeConfigFile(t, `
pcapsum:
  log:
    level: verbose
`)

	_, err := config.Load(path)
	assert.ErrorIs(t, err, core.ErrConfigInvalid)
}

func TestLoadInvalidLogFormat(t *testing.T) {
	path := writeConfigFile(t, `
pcapsum:
  log:
    format: xml
`)

	_, err := config.Load(path)
	assert.ErrorIs(t, err, core.ErrConfigInvalid)
}

func TestLoadZeroPacketLimitClamped(t *testing.T) {
	path := writeConfigFile(t, `
pcapsum:
  analyzer:
    packet_limit: 0
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint(1), cfg.Analyzer.PacketLimit)
}

func TestLoadFileLogRequiresPath(t *testing.T) {
	path := writeConfigFile(t, `
pcapsum:
  log:
    file:
      enabled: true
      path: ""
`)

	_, err := config.Load(path)
	assert.ErrorIs(t, err, core.ErrConfigInvalid)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
