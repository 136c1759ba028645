package main

import (
	"os"

	"github.com/sant0-9/quill/cmd/quill/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
