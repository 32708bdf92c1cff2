package gocalc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Factory builds a fresh instance of a compiled plugin command.
type Factory func() Command

var (
	plugins   = make(map[string]Factory)
	pluginsMu sync.RWMutex
)

// RegisterPlugin makes a compiled plugin available under name. It is meant
// to be called from a plugin package's init and panics on duplicates.
func RegisterPlugin(name string, factory Factory) {
	pluginsMu.Lock()
	defer pluginsMu.Unlock()
	if factory == nil {
		panic("gocalc: RegisterPlugin factory is nil")
	}
	if _, dup := plugins[name]; dup {
		panic("gocalc: RegisterPlugin called twice for plugin " + name)
	}
	plugins[name] = factory
}

// Plugins returns the sorted names of compiled plugins.
func Plugins() []string {
	pluginsMu.RLock()
	defer pluginsMu.RUnlock()
	names := make([]string, 0, len(plugins))
	for name := range plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupPlugin(name string) (Factory, bool) {
	pluginsMu.RLock()
	defer pluginsMu.RUnlock()
	f, ok := plugins[name]
	return f, ok
}

// LoadPlugins scans dir and registers one command per sub-directory, named
// after the directory. A directory matching a compiled plugin instantiates
// it; a directory holding Go source is interpreted as a scripted plugin.
// When dir does not exist every compiled plugin is registered instead.
// Individual plugin failures are logged and skipped.
func LoadPlugins(h *CommandHandler, dir string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("plugins directory not found, using compiled plugins", zap.String("dir", dir))
		for _, name := range Plugins() {
			factory, _ := lookupPlugin(name)
			h.Register(name, factory())
			logger.Info("command registered", zap.String("command", name), zap.String("source", "compiled"))
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read plugins directory %s: %w", dir, err)
	}

	// os.ReadDir returns entries sorted by filename.
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		if factory, ok := lookupPlugin(name); ok {
			h.Register(name, factory())
			logger.Info("command registered", zap.String("command", name), zap.String("source", "compiled"))
			continue
		}

		path := filepath.Join(dir, name)
		cmd, err := LoadScript(path)
		if errors.Is(err, ErrNoSource) {
			logger.Warn("skipping plugin without source", zap.String("plugin", name), zap.String("path", path))
			continue
		}
		if err != nil {
			logger.Error("error importing plugin", zap.String("plugin", name), zap.Error(err))
			continue
		}
		h.Register(name, cmd)
		logger.Info("command registered", zap.String("command", name), zap.String("source", "script"))
	}
	return nil
}
