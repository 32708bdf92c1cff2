package gocalc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerDefaultWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		LogDir:    filepath.Join(dir, "logs"),
		LogConfig: filepath.Join(dir, "missing.yaml"),
		LogLevel:  "info",
	}

	logger, err := NewLogger(cfg, false)
	require.NoError(t, err)
	logger.Info("calculation performed")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(cfg.LogDir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Logging configured.")
	assert.Contains(t, string(data), "calculation performed")
}

func TestNewLoggerLevel(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{LogDir: dir, LogConfig: "", LogLevel: "warn"}

	logger, err := NewLogger(cfg, false)
	require.NoError(t, err)
	logger.Info("hidden info line")
	logger.Warn("visible warning")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden info line")
	assert.Contains(t, string(data), "visible warning")

	verbose, err := NewLogger(cfg, true)
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(-1), "verbose enables debug")
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	cfg := &Config{LogDir: t.TempDir(), LogLevel: "chatty"}
	_, err := NewLogger(cfg, false)
	assert.Error(t, err)
}

func TestNewLoggerFromYAML(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "custom.log")
	yamlCfg := `level: debug
encoding: json
outputPaths:
  - ` + out + `
errorOutputPaths:
  - stderr
encoderConfig:
  messageKey: msg
  levelKey: level
  levelEncoder: lowercase
`
	cfgPath := filepath.Join(dir, "logging.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlCfg), 0644))

	logger, err := NewLogger(&Config{LogDir: filepath.Join(dir, "logs"), LogConfig: cfgPath, LogLevel: "info"}, false)
	require.NoError(t, err)
	logger.Debug("debug from yaml")
	_ = logger.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, string(data), `"msg":"debug from yaml"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}

func TestNewLoggerBadYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "logging.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("level: [not, a, level"), 0644))

	_, err := NewLogger(&Config{LogDir: dir, LogConfig: cfgPath, LogLevel: "info"}, false)
	assert.Error(t, err)
}

func TestNewLoggerYAMLRelativeOutputUsesLogDir(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "custom", "logs")
	cfgPath := filepath.Join(dir, "logging.yaml")
	yamlCfg := `level: info
encoding: console
outputPaths:
  - nested/app.log
errorOutputPaths:
  - stderr
encoderConfig:
  messageKey: msg
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlCfg), 0644))

	logger, err := NewLogger(&Config{LogDir: logDir, LogConfig: cfgPath}, false)
	require.NoError(t, err)
	logger.Info("relative output")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(logDir, "nested", "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "relative output")
}

func TestNewLoggerShippedConfig(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "elsewhere")

	logger, err := NewLogger(&Config{LogDir: logDir, LogConfig: "logging.yaml"}, false)
	require.NoError(t, err)
	logger.Info("shipped config")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(logDir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "shipped config")
}

func TestResolveOutputPaths(t *testing.T) {
	got := resolveOutputPaths([]string{"stdout", "stderr", "/var/log/calc.log", "calc.log", "file:///tmp/x.log"}, "logs")
	assert.Equal(t, []string{"stdout", "stderr", "/var/log/calc.log", filepath.Join("logs", "calc.log"), "file:///tmp/x.log"}, got)
}
