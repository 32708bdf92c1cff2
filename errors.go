package gocalc

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand is returned when no command is registered under a name.
	ErrUnknownCommand = errors.New("no such command")
	// ErrArgumentCount is returned when a command gets the wrong number of arguments.
	ErrArgumentCount = errors.New("wrong number of arguments")
	// ErrInvalidNumber is returned when an operand cannot be parsed as a number.
	ErrInvalidNumber = errors.New("invalid input: please provide valid numbers")
	// ErrDivisionByZero is returned by divide when the divisor is zero.
	ErrDivisionByZero = errors.New("cannot divide by zero")
	// ErrInvalidIndex is returned when a history index is malformed or out of range.
	ErrInvalidIndex = errors.New("invalid history index")
	// ErrExit asks the REPL to stop.
	ErrExit = errors.New("exit requested")
)

// IndexError reports a history index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid index: %d (history has %d entries)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrInvalidIndex }

// UnknownCommandError names the command that was not found.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnknownCommand, e.Name)
}

func (e *UnknownCommandError) Unwrap() error { return ErrUnknownCommand }
