package gocalc

import (
	"io"
	"os"

	"go.uber.org/zap"
)

// Command is a named capability the REPL can dispatch to.
type Command interface {
	Execute(env *Env, args ...string) error
}

// CommandFunc adapts an ordinary function to the Command interface.
type CommandFunc func(env *Env, args ...string) error

func (f CommandFunc) Execute(env *Env, args ...string) error {
	return f(env, args...)
}

// Env is what a command may touch while it runs.
type Env struct {
	Stdout  io.Writer
	Logger  *zap.Logger
	History HistoryStore
}

// Out returns the writer commands print to, falling back to os.Stdout.
func (e *Env) Out() io.Writer {
	if e == nil || e.Stdout == nil {
		return os.Stdout
	}
	return e.Stdout
}

// Log returns the environment logger or a no-op logger.
func (e *Env) Log() *zap.Logger {
	if e == nil || e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
