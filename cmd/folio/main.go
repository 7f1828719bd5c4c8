// Package main provides the folio command-line interface: the interactive
// command palette, the HTTP API and one-shot command execution.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
