package main

import (
	"os"

	"github.com/kvenkat/niftywatch/cmd/niftywatch/commands"
)

// main is the entry point for the niftywatch CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
