package gocalc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// LogFileName is the default log file inside Config.LogDir.
const LogFileName = "calculator.log"

// NewLogger builds the application logger. If cfg.LogConfig names an
// existing YAML file it is decoded as a zap.Config, with relative output
// files placed under LogDir; otherwise logs go to LogDir/calculator.log at
// cfg.LogLevel. verbose forces debug level.
func NewLogger(cfg *Config, verbose bool) (*zap.Logger, error) {
	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	zcfg, err := loadLogConfig(cfg.LogConfig)
	if err != nil {
		return nil, err
	}
	if zcfg == nil {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		c := zap.NewProductionConfig()
		c.Encoding = "console"
		c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		c.Level = zap.NewAtomicLevelAt(level)
		c.OutputPaths = []string{filepath.Join(cfg.LogDir, LogFileName)}
		c.ErrorOutputPaths = []string{"stderr"}
		zcfg = &c
	} else {
		zcfg.OutputPaths = resolveOutputPaths(zcfg.OutputPaths, cfg.LogDir)
		zcfg.ErrorOutputPaths = resolveOutputPaths(zcfg.ErrorOutputPaths, cfg.LogDir)
		for _, path := range append(zcfg.OutputPaths, zcfg.ErrorOutputPaths...) {
			if isStreamOrURL(path) {
				continue
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, fmt.Errorf("create log directory: %w", err)
			}
		}
	}
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Logging configured.", zap.String("environment", cfg.Environment))
	return logger, nil
}

// resolveOutputPaths places relative file outputs from the YAML config
// inside logDir. Standard streams, URLs and absolute paths are left alone.
func resolveOutputPaths(paths []string, logDir string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if isStreamOrURL(p) || filepath.IsAbs(p) {
			out[i] = p
			continue
		}
		out[i] = filepath.Join(logDir, p)
	}
	return out
}

func isStreamOrURL(path string) bool {
	return path == "stdout" || path == "stderr" || strings.Contains(path, "://")
}

// loadLogConfig returns nil when path does not exist.
func loadLogConfig(path string) (*zap.Config, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c := zap.NewProductionConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}
