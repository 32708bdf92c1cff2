package main

import "fmt"

func Execute(args []string) (string, error) {
	a, b, err := operands(args)
	if err != nil {
		return "", err
	}
	if b == 0 {
		return "", fmt.Errorf("modulo by zero")
	}
	return fmt.Sprintf("The result of %d %% %d is %d", a, b, a%b), nil
}
