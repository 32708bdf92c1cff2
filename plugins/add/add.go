// Package add registers the add command.
package add

import (
	"github.com/shopspring/decimal"

	"gocalc"
)

func init() {
	gocalc.RegisterPlugin("add", New)
}

// New returns the add command.
func New() gocalc.Command {
	return gocalc.BinaryOp{
		Name:   "add",
		Symbol: "+",
		Apply: func(a, b decimal.Decimal) (decimal.Decimal, error) {
			return a.Add(b), nil
		},
	}
}
