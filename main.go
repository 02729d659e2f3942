package main

import (
	"os"

	"github.com/psytests/psytests/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
