package main

import (
	"errors"
	"strconv"
)

func operands(args []string) (int64, int64, error) {
	if len(args) != 2 {
		return 0, 0, errors.New("modulo requires exactly 2 arguments")
	}
	a, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
