// Package subtract registers the subtract command.
package subtract

import (
	"github.com/shopspring/decimal"

	"gocalc"
)

func init() {
	gocalc.RegisterPlugin("subtract", New)
}

// New returns the subtract command.
func New() gocalc.Command {
	return gocalc.BinaryOp{
		Name:   "subtract",
		Symbol: "-",
		Apply: func(a, b decimal.Decimal) (decimal.Decimal, error) {
			return a.Sub(b), nil
		},
	}
}
