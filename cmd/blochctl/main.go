// SPDX-License-Identifier: MIT

// Command blochctl drives a single-qubit session from the command line:
// list the presets, evolve a state through gates and noise channels with
// undo/redo, and validate hand-written matrices.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
