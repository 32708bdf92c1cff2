package gocalc

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// MenuCommand lists every command registered in its handler.
type MenuCommand struct {
	Handler *CommandHandler
}

func (m *MenuCommand) Execute(env *Env, args ...string) error {
	_, err := fmt.Fprintln(env.Out(), "Available commands:")
	if err != nil {
		return err
	}
	for _, name := range m.Handler.Names() {
		if _, err = fmt.Fprintf(env.Out(), "- %s\n", name); err != nil {
			return err
		}
	}
	return nil
}

// DeleteHistoryCommand removes one entry from the calculation history.
// Only the first argument is read; extra tokens are ignored.
type DeleteHistoryCommand struct{}

func (DeleteHistoryCommand) Execute(env *Env, args ...string) error {
	if len(args) == 0 {
		return fmt.Errorf("delete: %w: usage: delete <index>", ErrInvalidIndex)
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("delete: %w: %q is not an integer", ErrInvalidIndex, args[0])
	}
	if env == nil || env.History == nil {
		return fmt.Errorf("delete: %w", errNoHistory)
	}

	// Storage may have been changed by another process since startup.
	if err := env.History.Load(); err != nil {
		return fmt.Errorf("delete: load history: %w", err)
	}
	removed, err := env.History.Delete(index)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	env.Log().Info("history entry deleted", zap.Int("index", index))
	_, err = fmt.Fprintf(env.Out(), "Deleted row at index %d: %s\n", index, removed)
	return err
}

// RegisterBuiltins adds the commands that are always present regardless
// of the plugin directory.
func RegisterBuiltins(h *CommandHandler) {
	h.Register("menu", &MenuCommand{Handler: h})
	h.Register("delete", DeleteHistoryCommand{})
}
