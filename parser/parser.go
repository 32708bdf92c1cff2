package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrEmpty is returned when the input holds nothing but whitespace.
var ErrEmpty = errors.New("empty input")

var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Quote", Pattern: `'[^']*'|"[^"]*"`},
	{Name: "Word", Pattern: `[^\s'"]+`},
})

// Line is a single REPL input: a command name followed by its arguments.
type Line struct {
	Name string   `parser:"@Word"`
	Args []string `parser:"@(Word | Quote)*"`
}

var parser = participle.MustBuild[Line](
	participle.Lexer(lineLexer),
	participle.Elide("Whitespace"),
)

// Parse splits input into a command name and its arguments. Quoted
// arguments are returned without their quotes.
func Parse(input string) (*Line, error) {
	clean := strings.TrimSpace(input)
	if clean == "" {
		return nil, ErrEmpty
	}

	line, err := parser.ParseString("", clean)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	for i, arg := range line.Args {
		line.Args[i] = unquote(arg)
	}
	return line, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// String renders the line back into its canonical space-separated form.
func (l *Line) String() string {
	if len(l.Args) == 0 {
		return l.Name
	}
	return l.Name + " " + strings.Join(l.Args, " ")
}
