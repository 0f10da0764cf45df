// Shared helpers for shelf subcommands.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/bookshelf/pkg/library"
	"github.com/mesh-intelligence/bookshelf/pkg/types"
)

// openLibrary resolves the data directory and opens the facade over it.
// Callers must Close the returned library.
func openLibrary() (*library.Library, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	log := logrus.StandardLogger()
	lib, err := library.Open(types.Config{
		Backend: types.BackendTextFile,
		DataDir: dataDir,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	return lib, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// fatalUser prints a user-facing error and exits with the user error code.
func fatalUser(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(exitUserError)
}
