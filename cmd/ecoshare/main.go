// Package main is the entry point of the ecoshare CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/ecoshare/internal/cli"
	"github.com/rshade/ecoshare/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}
