package main

import "os/exec"

func Execute(args []string) (string, error) {
	out, err := exec.Command(args[0], args[1:]...).Output()
	return string(out), err
}
