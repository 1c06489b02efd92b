package main

import (
	"os"

	"github.com/dshills/annotate/pkg/cli"
)

// main is the entry point for the annotate CLI.
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
