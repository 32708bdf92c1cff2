package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

func Execute(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("power requires exactly 2 arguments")
	}
	base, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", fmt.Errorf("invalid base %q", args[0])
	}
	exp, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return "", fmt.Errorf("invalid exponent %q", args[1])
	}
	result := strconv.FormatFloat(math.Pow(base, exp), 'f', -1, 64)
	return fmt.Sprintf("The result of %s ^ %s is %s", args[0], args[1], result), nil
}
