// Loan subcommands for the shelf CLI.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bookshelf/pkg/types"
)

var (
	loanActiveOnly bool
	loanUserFilter string
)

var loanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Manage loans",
}

var loanCreateCmd = &cobra.Command{
	Use:   "create <user-id> <book-id>",
	Short: "Lend a book to a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		id, err := lib.CreateLoan(args[0], args[1])
		switch {
		case errors.Is(err, types.ErrNotFound):
			fatalUser("user or book not found")
		case errors.Is(err, types.ErrBookUnavailable):
			fatalUser("book %q has no available copies", args[1])
		case err != nil:
			return err
		}

		fmt.Printf("Created loan %s\n", id)
		return nil
	},
}

var loanReturnCmd = &cobra.Command{
	Use:   "return <loan-id>",
	Short: "Register a book return",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		err = lib.RegisterReturn(args[0])
		switch {
		case errors.Is(err, types.ErrNotFound):
			fatalUser("loan %q not found", args[0])
		case errors.Is(err, types.ErrLoanClosed):
			fatalUser("loan %q is already returned", args[0])
		case err != nil:
			return err
		}

		fmt.Printf("Returned loan %s\n", args[0])
		return nil
	},
}

var loanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loans",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		var loans []types.LoanDTO
		var err2 error
		switch {
		case loanUserFilter != "":
			loans, err2 = lib.FindLoansByUserID(loanUserFilter)
		case loanActiveOnly:
			loans, err2 = lib.GetActiveLoans()
		default:
			loans, err2 = lib.GetAllLoans()
		}
		if err2 != nil {
			return err2
		}
		if loanUserFilter != "" && loanActiveOnly {
			loans = filterActive(loans)
		}

		if flagJSON {
			return printJSON(loans)
		}
		for _, l := range loans {
			ret := l.ReturnDate
			if ret == "" {
				ret = "-"
			}
			fmt.Printf("%s\tuser=%s\tbook=%s\tout=%s\tback=%s\tactive=%t\n",
				l.ID, l.UserID, l.BookID, l.LoanDate, ret, l.Active)
		}
		return nil
	},
}

var loanShowCmd = &cobra.Command{
	Use:   "show <loan-id>",
	Short: "Show one loan in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		l, err := lib.FindLoanByID(args[0])
		if errors.Is(err, types.ErrNotFound) {
			fatalUser("loan %q not found", args[0])
		} else if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(l)
		}

		fmt.Printf("ID:         %s\n", l.ID)
		fmt.Printf("User:       %s\n", l.UserID)
		fmt.Printf("Book:       %s\n", l.BookID)
		fmt.Printf("Loaned:     %s\n", l.LoanDate)
		if l.ReturnDate != "" {
			fmt.Printf("Returned:   %s\n", l.ReturnDate)
		}
		fmt.Printf("Active:     %t\n", l.Active)
		return nil
	},
}

func filterActive(loans []types.LoanDTO) []types.LoanDTO {
	out := loans[:0]
	for _, l := range loans {
		if l.Active {
			out = append(out, l)
		}
	}
	return out
}

func init() {
	loanListCmd.Flags().BoolVar(&loanActiveOnly, "active", false, "only loans not yet returned")
	loanListCmd.Flags().StringVar(&loanUserFilter, "user", "", "only loans for this user ID")

	loanCmd.AddCommand(loanCreateCmd)
	loanCmd.AddCommand(loanReturnCmd)
	loanCmd.AddCommand(loanListCmd)
	loanCmd.AddCommand(loanShowCmd)
}
