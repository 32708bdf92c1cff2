package gocalc

import (
	"sync"

	"go.uber.org/zap"
)

// CommandHandler is the dispatch table mapping command names to commands.
type CommandHandler struct {
	mu       sync.RWMutex
	commands map[string]Command
	order    []string
	logger   *zap.Logger
}

// NewCommandHandler returns an empty handler. A nil logger discards output.
func NewCommandHandler(logger *zap.Logger) *CommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandHandler{
		commands: make(map[string]Command),
		logger:   logger,
	}
}

// Register binds cmd to name. Re-registering a name replaces the command
// but keeps its position in Names.
func (h *CommandHandler) Register(name string, cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.commands[name]; !exists {
		h.order = append(h.order, name)
	} else {
		h.logger.Debug("replacing command", zap.String("command", name))
	}
	h.commands[name] = cmd
	h.logger.Debug("command registered", zap.String("command", name))
}

// Lookup returns the command registered under name.
func (h *CommandHandler) Lookup(name string) (Command, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	cmd, ok := h.commands[name]
	return cmd, ok
}

// Execute dispatches name with args.
func (h *CommandHandler) Execute(env *Env, name string, args ...string) error {
	cmd, ok := h.Lookup(name)
	if !ok {
		return &UnknownCommandError{Name: name}
	}
	return cmd.Execute(env, args...)
}

// Names returns the registered command names in registration order.
func (h *CommandHandler) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, len(h.order))
	copy(names, h.order)
	return names
}

// Len returns the number of registered commands.
func (h *CommandHandler) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.order)
}
