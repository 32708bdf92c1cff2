package gocalc

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxExponent bounds the decimal exponent accepted for an operand. Larger
// exponents overflow decimal arithmetic or render as enormous strings.
const MaxExponent = 1000

// BinaryOp is a two-operand arithmetic command. Successful results are
// printed and appended to the environment's history.
type BinaryOp struct {
	Name   string
	Symbol string
	Apply  func(a, b decimal.Decimal) (decimal.Decimal, error)
}

func (op BinaryOp) Execute(env *Env, args ...string) error {
	a, b, err := ParseOperands(op.Name, args)
	if err != nil {
		env.Log().Error("invalid arguments", zap.String("command", op.Name), zap.Error(err))
		return err
	}

	result, err := op.apply(a, b)
	if err != nil {
		env.Log().Error("calculation failed", zap.String("command", op.Name), zap.Error(err))
		return fmt.Errorf("%s: %w", op.Name, err)
	}

	env.Log().Info("calculation performed",
		zap.String("operation", op.Name),
		zap.String("operand1", a.String()),
		zap.String("operand2", b.String()),
		zap.String("result", result.String()),
	)
	if _, err := fmt.Fprintf(env.Out(), "The result of %s %s %s is %s\n", a, op.Symbol, b, result); err != nil {
		return err
	}

	if env != nil && env.History != nil {
		rec := Record{Operation: op.Name, Operand1: a, Operand2: b, Result: result}
		if err := env.History.Append(rec); err != nil {
			return fmt.Errorf("%s: save history: %w", op.Name, err)
		}
	}
	return nil
}

func (op BinaryOp) apply(a, b decimal.Decimal) (result decimal.Decimal, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("calculation failed: %v", p)
		}
	}()
	return op.Apply(a, b)
}

// ParseOperands checks that args holds exactly two numbers and parses them.
func ParseOperands(name string, args []string) (decimal.Decimal, decimal.Decimal, error) {
	if len(args) != 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%s: %w: requires exactly 2, got %d", name, ErrArgumentCount, len(args))
	}
	a, err := parseOperand(name, args[0])
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	b, err := parseOperand(name, args[1])
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return a, b, nil
}

func parseOperand(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w: %q", name, ErrInvalidNumber, s)
	}
	if exp := d.Exponent(); exp > MaxExponent || exp < -MaxExponent {
		return decimal.Zero, fmt.Errorf("%s: %w: %q is out of range", name, ErrInvalidNumber, s)
	}
	return d, nil
}
