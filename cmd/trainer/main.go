package main

import (
	"os"

	"github.com/rustyeddy/fxtrainer/cmd/trainer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
