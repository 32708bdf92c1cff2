// Package divide registers the divide command.
package divide

import (
	"github.com/shopspring/decimal"

	"gocalc"
)

func init() {
	gocalc.RegisterPlugin("divide", New)
}

// New returns the divide command. Quotients are rounded to
// decimal.DivisionPrecision places.
func New() gocalc.Command {
	return gocalc.BinaryOp{
		Name:   "divide",
		Symbol: "/",
		Apply: func(a, b decimal.Decimal) (decimal.Decimal, error) {
			if b.IsZero() {
				return decimal.Zero, gocalc.ErrDivisionByZero
			}
			return a.Div(b), nil
		},
	}
}
