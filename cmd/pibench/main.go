package main

import (
	"os"

	"github.com/msto63/pibench/cmd/pibench/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args[1:], os.Stdout, os.Stderr))
}
