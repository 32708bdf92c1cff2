package gocalc

import (
	"sort"
	"strings"
)

// replKeywords are handled by the REPL itself and not by the dispatch table.
var replKeywords = []string{"clear", "delete", "exit", "history", "menu"}

// Completer completes command names for readline.
type Completer struct {
	handler *CommandHandler
}

func NewCompleter(h *CommandHandler) *Completer {
	return &Completer{handler: h}
}

func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	parts := strings.Fields(lineStr)
	trailingSpace := strings.HasSuffix(lineStr, " ")

	switch {
	case len(parts) == 0:
		return c.completeCommands("")
	case len(parts) == 1 && !trailingSpace:
		return c.completeCommands(parts[0])
	case strings.EqualFold(parts[0], "clear") && (len(parts) == 1 || (len(parts) == 2 && !trailingSpace)):
		prefix := ""
		if len(parts) == 2 {
			prefix = parts[1]
		}
		return completeWords([]string{"history"}, prefix)
	}
	// Arguments are numbers; nothing to offer.
	return nil, 0
}

func (c *Completer) completeCommands(prefix string) ([][]rune, int) {
	seen := make(map[string]bool)
	var words []string
	for _, name := range append(c.handler.Names(), replKeywords...) {
		if !seen[name] {
			seen[name] = true
			words = append(words, name)
		}
	}
	sort.Strings(words)
	return completeWords(words, prefix)
}

func completeWords(words []string, prefix string) (newLine [][]rune, length int) {
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			newLine = append(newLine, []rune(w[len(prefix):]))
		}
	}
	if len(newLine) == 1 {
		newLine[0] = append(newLine[0], ' ')
	}
	return newLine, len(prefix)
}
