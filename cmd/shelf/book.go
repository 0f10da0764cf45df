// Book subcommands for the shelf CLI.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bookshelf/pkg/types"
)

var (
	bookTitle     string
	bookAuthor    string
	bookISBN      string
	bookStock     int
	bookAvailable int
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage the book catalog",
}

var bookCreateCmd = &cobra.Command{
	Use:   "create <id>",
	Short: "Add a book to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		available := bookAvailable
		if !cmd.Flags().Changed("available") {
			available = bookStock
		}
		err = lib.CreateBook(types.BookDTO{
			ID:             args[0],
			Title:          bookTitle,
			Author:         bookAuthor,
			ISBN:           bookISBN,
			Stock:          bookStock,
			AvailableStock: available,
		})
		switch {
		case errors.Is(err, types.ErrDuplicateID):
			fatalUser("book %q already exists", args[0])
		case errors.Is(err, types.ErrInvalidData):
			fatalUser("invalid book: %v", err)
		case err != nil:
			return err
		}

		fmt.Printf("Created book %s\n", args[0])
		return nil
	},
}

var bookUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a book in the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		current, err := lib.FindBookByID(args[0])
		if errors.Is(err, types.ErrNotFound) {
			fatalUser("book %q not found", args[0])
		} else if err != nil {
			return err
		}

		if cmd.Flags().Changed("title") {
			current.Title = bookTitle
		}
		if cmd.Flags().Changed("author") {
			current.Author = bookAuthor
		}
		if cmd.Flags().Changed("isbn") {
			current.ISBN = bookISBN
		}
		if cmd.Flags().Changed("stock") {
			current.Stock = bookStock
		}
		if cmd.Flags().Changed("available") {
			current.AvailableStock = bookAvailable
		}

		if err := lib.UpdateBook(current); err != nil {
			if errors.Is(err, types.ErrInvalidData) {
				fatalUser("invalid book: %v", err)
			}
			return err
		}

		fmt.Printf("Updated book %s\n", args[0])
		return nil
	},
}

var bookDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a book from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		err = lib.DeleteBook(args[0])
		switch {
		case errors.Is(err, types.ErrNotFound):
			fatalUser("book %q not found", args[0])
		case errors.Is(err, types.ErrActiveLoans):
			fatalUser("book %q is still out on loan", args[0])
		case err != nil:
			return err
		}

		fmt.Printf("Deleted book %s\n", args[0])
		return nil
	},
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		books, err := lib.GetAllBooks()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(books)
		}
		for _, b := range books {
			fmt.Printf("%s\t%s\t%s\t%d/%d available\n",
				b.ID, b.Title, b.Author, b.AvailableStock, b.Stock)
		}
		return nil
	},
}

var bookFindCmd = &cobra.Command{
	Use:   "find <title>",
	Short: "Find books by title substring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		books, err := lib.FindBooksByTitle(args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(books)
		}
		for _, b := range books {
			fmt.Printf("%s\t%s\t%s\n", b.ID, b.Title, b.Author)
		}
		return nil
	},
}

var bookShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one book in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		b, err := lib.FindBookByID(args[0])
		if errors.Is(err, types.ErrNotFound) {
			fatalUser("book %q not found", args[0])
		} else if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(b)
		}

		fmt.Printf("ID:         %s\n", b.ID)
		fmt.Printf("Title:      %s\n", b.Title)
		fmt.Printf("Author:     %s\n", b.Author)
		fmt.Printf("ISBN:       %s\n", b.ISBN)
		fmt.Printf("Stock:      %d\n", b.Stock)
		fmt.Printf("Available:  %d\n", b.AvailableStock)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{bookCreateCmd, bookUpdateCmd} {
		cmd.Flags().StringVar(&bookTitle, "title", "", "book title")
		cmd.Flags().StringVar(&bookAuthor, "author", "", "author name")
		cmd.Flags().StringVar(&bookISBN, "isbn", "", "ISBN")
		cmd.Flags().IntVar(&bookStock, "stock", 1, "total copies")
		cmd.Flags().IntVar(&bookAvailable, "available", 0, "available copies (default: stock)")
	}

	bookCmd.AddCommand(bookCreateCmd)
	bookCmd.AddCommand(bookUpdateCmd)
	bookCmd.AddCommand(bookDeleteCmd)
	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookFindCmd)
	bookCmd.AddCommand(bookShowCmd)
}
