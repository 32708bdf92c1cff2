package parser

import (
	"errors"
	"strings"
)

// Kind says how the REPL should route a line.
type Kind int

const (
	KindEmpty Kind = iota
	KindCommand
	KindExit
	KindMenu
	KindHistory
	KindClearHistory
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindCommand:
		return "command"
	case KindExit:
		return "exit"
	case KindMenu:
		return "menu"
	case KindHistory:
		return "history"
	case KindClearHistory:
		return "clear history"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Input is a classified REPL line.
type Input struct {
	Kind Kind
	Name string
	Args []string
}

// Classify parses input and decides which REPL branch handles it.
// Management keywords match case-insensitively; command names are kept
// as typed.
func Classify(input string) (*Input, error) {
	line, err := Parse(input)
	if errors.Is(err, ErrEmpty) {
		return &Input{Kind: KindEmpty}, nil
	}
	if err != nil {
		return nil, err
	}

	keyword := strings.ToLower(line.Name)
	in := &Input{Kind: KindCommand, Name: line.Name, Args: line.Args}

	switch {
	case keyword == "exit" && len(line.Args) == 0:
		in.Kind, in.Name = KindExit, keyword
	case keyword == "menu" && len(line.Args) == 0:
		in.Kind, in.Name = KindMenu, keyword
	case keyword == "history" && len(line.Args) == 0:
		in.Kind, in.Name = KindHistory, keyword
	case keyword == "clear" && len(line.Args) == 1 && strings.EqualFold(line.Args[0], "history"):
		in.Kind, in.Name, in.Args = KindClearHistory, "clear history", nil
	case keyword == "delete":
		in.Kind, in.Name = KindDelete, keyword
	}
	return in, nil
}
