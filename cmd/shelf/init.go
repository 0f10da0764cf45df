// Init command: bootstrap the data directory and its three entity files.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bookshelf/internal/paths"
	"github.com/mesh-intelligence/bookshelf/internal/textstore"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the data directory",
	Long: `Init creates the data directory if needed and ensures the three
entity files (users.txt, books.txt, loans.txt) exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}

		store := textstore.NewStore(dataDir, nil)
		if err := store.InitializeFiles(); err != nil {
			return fmt.Errorf("initialize files: %w", err)
		}

		fmt.Printf("Initialized data directory %s (%s storage)\n",
			dataDir, paths.StorageType(dataDir))
		return nil
	},
}
