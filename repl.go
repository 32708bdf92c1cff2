package gocalc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
	"golang.org/x/term"

	"gocalc/parser"
)

// LineReader yields one line of user input per call. It returns io.EOF
// when input is exhausted and readline.ErrInterrupt on Ctrl-C.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// NewLineReader uses readline with completion when in is a terminal and a
// plain line scanner otherwise.
func NewLineReader(in io.Reader, out io.Writer, prompt string, completer readline.AutoCompleter) (LineReader, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return readline.NewEx(&readline.Config{
			Prompt:          prompt,
			AutoComplete:    completer,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
			Stdin:           f,
			Stdout:          out,
		})
	}
	return &scanReader{scanner: bufio.NewScanner(in), out: out, prompt: prompt}, nil
}

type scanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

func (r *scanReader) Readline() (string, error) {
	fmt.Fprint(r.out, r.prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *scanReader) Close() error { return nil }

var errNoHistory = errors.New("no history store configured")

// REPL reads lines, classifies them and dispatches them until exit.
type REPL struct {
	Handler *CommandHandler
	History HistoryStore
	Logger  *zap.Logger
	Prompt  string
	Stdin   io.Reader
	Stdout  io.Writer
}

func (r *REPL) env() *Env {
	return &Env{Stdout: r.Stdout, Logger: r.Logger, History: r.History}
}

func (r *REPL) log() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Run loops until the user exits, input ends, Ctrl-C is pressed or ctx
// is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	logger := r.log()
	defer logger.Info("Application shutdown.")

	reader, err := NewLineReader(r.Stdin, r.Stdout, r.Prompt, NewCompleter(r.Handler))
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer reader.Close()

	logger.Info("Application started. Type 'exit' to exit.")
	if err := PrintBanner(r.Stdout); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			logger.Info("Application interrupted and exiting gracefully.")
			return nil
		}

		line, err := reader.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			logger.Info("Application interrupted and exiting gracefully.")
			return nil
		}
		if err == io.EOF {
			logger.Info("Application exit.")
			return nil
		}
		if err != nil {
			return err
		}

		if r.Eval(line) {
			logger.Info("Application exit.")
			return nil
		}
	}
}

// Eval handles one line of input and reports any failure on the output.
// It returns true when the REPL should stop.
func (r *REPL) Eval(line string) bool {
	in, err := parser.Classify(line)
	if err != nil {
		r.log().Error("invalid command format", zap.String("input", line), zap.Error(err))
		fmt.Fprintf(r.Stdout, "Invalid command format. Please try again. Error: %v\n", err)
		return false
	}
	err = r.Dispatch(in)
	if errors.Is(err, ErrExit) {
		return true
	}
	if err != nil {
		r.Report(err)
	}
	return false
}

// Dispatch routes a classified input to the history store or the command
// handler.
func (r *REPL) Dispatch(in *parser.Input) error {
	env := r.env()
	switch in.Kind {
	case parser.KindEmpty:
		return nil
	case parser.KindExit:
		if _, ok := r.Handler.Lookup("exit"); ok {
			return r.Handler.Execute(env, "exit")
		}
		return ErrExit
	case parser.KindMenu:
		return r.Handler.Execute(env, "menu")
	case parser.KindHistory:
		if r.History == nil {
			return errNoHistory
		}
		r.log().Info("Displaying calculation history.")
		return ShowHistory(r.Stdout, r.History)
	case parser.KindClearHistory:
		if r.History == nil {
			return errNoHistory
		}
		if err := r.History.Clear(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(r.Stdout, "History cleared.")
		return err
	case parser.KindDelete:
		return r.Handler.Execute(env, "delete", in.Args...)
	default:
		return r.Handler.Execute(env, in.Name, in.Args...)
	}
}

// Report prints a user-facing message for err.
func (r *REPL) Report(err error) {
	r.log().Error("command failed", zap.Error(err))

	var (
		unknown *UnknownCommandError
		idxErr  *IndexError
	)
	switch {
	case errors.As(err, &unknown):
		fmt.Fprintf(r.Stdout, "No such command: %s\n", unknown.Name)
	case errors.Is(err, ErrArgumentCount), errors.Is(err, ErrInvalidNumber):
		fmt.Fprintf(r.Stdout, "Invalid command format. Please try again. Error: %v\n", err)
	case errors.Is(err, ErrDivisionByZero):
		fmt.Fprintln(r.Stdout, "Cannot divide by zero.")
	case errors.As(err, &idxErr):
		fmt.Fprintf(r.Stdout, "Invalid index: %d. Please provide a valid index between 0 and %d.\n", idxErr.Index, idxErr.Len-1)
	case errors.Is(err, ErrInvalidIndex):
		fmt.Fprintln(r.Stdout, "Invalid format. Please use 'delete <index>'.")
	default:
		fmt.Fprintf(r.Stdout, "Error: %v\n", err)
	}
}
