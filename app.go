package gocalc

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// App wires configuration, logging, history and the command table together.
type App struct {
	Config  *Config
	Logger  *zap.Logger
	Session *Session
	Handler *CommandHandler
	History HistoryStore
}

// NewApp opens the history store selected by cfg. Plugins are not loaded
// until LoadPlugins or Start.
func NewApp(cfg *Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	session := NewSession()
	logger = logger.With(session.Fields()...)
	logger.Info("Environment variables loaded.",
		zap.String("environment", cfg.Environment),
		zap.Int("count", len(cfg.Settings)),
	)

	history, err := NewHistoryStore(cfg, session.ID, logger)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Session: session,
		Handler: NewCommandHandler(logger),
		History: history,
	}, nil
}

// LoadPlugins registers the plugin commands followed by menu and delete.
func (a *App) LoadPlugins() error {
	if err := LoadPlugins(a.Handler, a.Config.PluginDir, a.Logger); err != nil {
		return err
	}
	RegisterBuiltins(a.Handler)
	return nil
}

// REPL returns a REPL bound to the app reading from in and writing to out.
func (a *App) REPL(in io.Reader, out io.Writer) *REPL {
	return &REPL{
		Handler: a.Handler,
		History: a.History,
		Logger:  a.Logger,
		Prompt:  a.Config.Prompt,
		Stdin:   in,
		Stdout:  out,
	}
}

// Start loads plugins and runs the REPL until it exits.
func (a *App) Start(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := a.LoadPlugins(); err != nil {
		return err
	}
	return a.REPL(in, out).Run(ctx)
}

// Close releases the history store and flushes the logger.
func (a *App) Close() error {
	err := a.History.Close()
	_ = a.Logger.Sync()
	return err
}
