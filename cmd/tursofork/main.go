package main

import (
	"os"

	"github.com/sphr2k/turso-create-database-action/internal/cli"
)

func main() {
	// Failure details were already reported through the action's error
	// annotation; the exit code is all the runner still needs.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
