// Files command: diagnostics over the data directory.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bookshelf/internal/paths"
	"github.com/mesh-intelligence/bookshelf/internal/textstore"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Show data directory and file status",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}

		fmt.Printf("Data directory: %s\n", dataDir)
		fmt.Printf("Storage type:   %s\n", paths.StorageType(dataDir))

		for _, name := range []string{textstore.UsersFile, textstore.BooksFile, textstore.LoansFile} {
			status := "exists"
			if _, err := os.Stat(filepath.Join(dataDir, name)); err != nil {
				status = "not found"
			}
			fmt.Printf("  %-10s %s\n", name, status)
		}
		return nil
	},
}
