package main

import (
	"os"

	"github.com/acpkit/acp-conform/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
