package main

import (
	"os"

	"github.com/MarceloDChagas/Respira/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
