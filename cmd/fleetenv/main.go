package main

import (
	"os"

	"github.com/bianoble/fleetenv/cmd/fleetenv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
