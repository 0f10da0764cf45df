// Package main provides the shelf CLI, the console surface of the
// bookshelf record manager.
package main

import (
	"fmt"
	"os"
)

func main() {
	// Business-rule failures exit through fatalUser inside the
	// subcommands; anything that reaches here is an I/O or setup fault.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitSysError)
	}
}
