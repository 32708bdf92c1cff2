// Package exit registers the exit command.
package exit

import (
	"fmt"

	"gocalc"
)

func init() {
	gocalc.RegisterPlugin("exit", New)
}

// New returns a command that prints a farewell and stops the REPL.
func New() gocalc.Command {
	return gocalc.CommandFunc(func(env *gocalc.Env, args ...string) error {
		if _, err := fmt.Fprintln(env.Out(), "Exiting..."); err != nil {
			return err
		}
		return gocalc.ErrExit
	})
}
