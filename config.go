package gocalc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the calculator settings, read from the environment.
type Config struct {
	Environment    string `env:"ENVIRONMENT" envDefault:"PRODUCTION"`
	HistoryFile    string `env:"CALC_HISTORY_FILE" envDefault:"calculation_history.csv"`
	HistoryDB      string `env:"CALC_HISTORY_DB" envDefault:"calculation_history.db"`
	HistoryBackend string `env:"CALC_HISTORY_BACKEND" envDefault:"csv"`
	PluginDir      string `env:"CALC_PLUGIN_DIR" envDefault:"plugins"`
	LogDir         string `env:"CALC_LOG_DIR" envDefault:"logs"`
	LogConfig      string `env:"CALC_LOG_CONFIG" envDefault:"logging.yaml"`
	LogLevel       string `env:"CALC_LOG_LEVEL" envDefault:"info"`
	Prompt         string `env:"CALC_PROMPT" envDefault:">>> "`

	// Settings is a snapshot of the whole environment taken at load time.
	Settings map[string]string
}

// LoadConfig loads envFile (default .env) when present and parses the
// environment into a Config.
func LoadConfig(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Settings = environ()
	if _, ok := cfg.Settings["ENVIRONMENT"]; !ok {
		cfg.Settings["ENVIRONMENT"] = cfg.Environment
	}
	return cfg, nil
}

// Get returns an environment setting captured at load time. An empty key
// means ENVIRONMENT.
func (c *Config) Get(key string) (string, bool) {
	if key == "" {
		key = "ENVIRONMENT"
	}
	v, ok := c.Settings[key]
	return v, ok
}

func environ() map[string]string {
	settings := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			settings[k] = v
		}
	}
	return settings
}
