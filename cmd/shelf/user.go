// User subcommands for the shelf CLI.

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bookshelf/internal/datetext"
	"github.com/mesh-intelligence/bookshelf/pkg/types"
)

var (
	userName      string
	userEmail     string
	userPhone     string
	userAddress   string
	userBirthDate string
	userInactive  bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage library users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <id>",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		err = lib.CreateUser(types.UserDTO{
			ID:        args[0],
			Name:      userName,
			Email:     userEmail,
			Phone:     userPhone,
			Address:   userAddress,
			BirthDate: userBirthDate,
			Active:    !userInactive,
		})
		switch {
		case errors.Is(err, types.ErrDuplicateID):
			fatalUser("user %q already exists", args[0])
		case errors.Is(err, types.ErrInvalidData):
			fatalUser("invalid user: %v", err)
		case err != nil:
			return err
		}

		fmt.Printf("Created user %s\n", args[0])
		return nil
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		// Start from the stored record so unset flags keep their values.
		current, err := lib.FindUserByID(args[0])
		if errors.Is(err, types.ErrNotFound) {
			fatalUser("user %q not found", args[0])
		} else if err != nil {
			return err
		}

		if cmd.Flags().Changed("name") {
			current.Name = userName
		}
		if cmd.Flags().Changed("email") {
			current.Email = userEmail
		}
		if cmd.Flags().Changed("phone") {
			current.Phone = userPhone
		}
		if cmd.Flags().Changed("address") {
			current.Address = userAddress
		}
		if cmd.Flags().Changed("birth-date") {
			current.BirthDate = userBirthDate
		}
		if cmd.Flags().Changed("inactive") {
			current.Active = !userInactive
		}

		if err := lib.UpdateUser(current); err != nil {
			if errors.Is(err, types.ErrInvalidData) {
				fatalUser("invalid user: %v", err)
			}
			return err
		}

		fmt.Printf("Updated user %s\n", args[0])
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		err = lib.DeleteUser(args[0])
		switch {
		case errors.Is(err, types.ErrNotFound):
			fatalUser("user %q not found", args[0])
		case errors.Is(err, types.ErrActiveLoans):
			fatalUser("user %q still has active loans", args[0])
		case err != nil:
			return err
		}

		fmt.Printf("Deleted user %s\n", args[0])
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		users, err := lib.GetAllUsers()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(users)
		}
		for _, u := range users {
			fmt.Printf("%s\t%s\t%s\tactive=%t\n", u.ID, u.Name, u.Email, u.Active)
		}
		return nil
	},
}

var userFindCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Find users by name substring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		users, err := lib.FindUsersByName(args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(users)
		}
		for _, u := range users {
			fmt.Printf("%s\t%s\t%s\n", u.ID, u.Name, u.Email)
		}
		return nil
	},
}

var userShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one user in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		u, err := lib.FindUserByID(args[0])
		if errors.Is(err, types.ErrNotFound) {
			fatalUser("user %q not found", args[0])
		} else if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(u)
		}

		fmt.Printf("ID:           %s\n", u.ID)
		fmt.Printf("Name:         %s\n", u.Name)
		fmt.Printf("Email:        %s\n", u.Email)
		fmt.Printf("Phone:        %s\n", u.Phone)
		fmt.Printf("Address:      %s\n", u.Address)
		fmt.Printf("Birth date:   %s\n", prettyDate(u.BirthDate))
		fmt.Printf("Registered:   %s\n", u.RegistrationDate)
		fmt.Printf("Active:       %t\n", u.Active)
		return nil
	},
}

// prettyDate renders an ISO date in the long Spanish form users of the
// original system are used to reading.
func prettyDate(iso string) string {
	if iso == "" {
		return "-"
	}
	d, err := time.Parse(time.DateOnly, iso)
	if err != nil {
		return iso
	}
	return datetext.FormatDate(d)
}

func init() {
	for _, cmd := range []*cobra.Command{userCreateCmd, userUpdateCmd} {
		cmd.Flags().StringVar(&userName, "name", "", "full name")
		cmd.Flags().StringVar(&userEmail, "email", "", "email address")
		cmd.Flags().StringVar(&userPhone, "phone", "", "phone number")
		cmd.Flags().StringVar(&userAddress, "address", "", "postal address")
		cmd.Flags().StringVar(&userBirthDate, "birth-date", "", "birth date (yyyy-MM-dd)")
		cmd.Flags().BoolVar(&userInactive, "inactive", false, "mark the user inactive")
	}

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userFindCmd)
	userCmd.AddCommand(userShowCmd)
}
