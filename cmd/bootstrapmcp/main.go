// Package main provides the entry point for the bootstrapmcp CLI.
package main

import (
	"os"

	"github.com/bootstrapmcp/bootstrapmcp/cmd/bootstrapmcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
