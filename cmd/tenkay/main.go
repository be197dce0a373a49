package main

import (
	"os"

	"github.com/tenkay/backend/cmd/tenkay/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
