package main

import (
	"os"

	"github.com/pablasso/cockpit/internal/cli"
)

func main() {
	// Without args the root command launches the TUI.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
