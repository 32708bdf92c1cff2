package main

// Execute echoes its first argument. It does not check len(args).
func Execute(args []string) (string, error) {
	return args[0], nil
}
