// Package multiply registers the multiply command.
package multiply

import (
	"github.com/shopspring/decimal"

	"gocalc"
)

func init() {
	gocalc.RegisterPlugin("multiply", New)
}

// New returns the multiply command.
func New() gocalc.Command {
	return gocalc.BinaryOp{
		Name:   "multiply",
		Symbol: "*",
		Apply: func(a, b decimal.Decimal) (decimal.Decimal, error) {
			return a.Mul(b), nil
		},
	}
}
