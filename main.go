// Package main is the entry point for the HomeScout CLI application.
// It provides terminal access to the HomeScout property search service.
package main

import (
	"homescout/cli/cmd"
)

// main initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
