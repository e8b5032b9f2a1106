package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leadmart-dev/leadmart/internal/cli/forms"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a LeadMart account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set LEADMART_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set LEADMART_PASSWORD, will prompt if not provided)")

	return cmd
}

func runRegister(email, password string) error {
	if email == "" {
		email = os.Getenv("LEADMART_EMAIL")
	}
	if password == "" {
		password = os.Getenv("LEADMART_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or LEADMART_EMAIL env var)")
	}

	prompted := password == ""
	if prompted {
		first, err := promptPassword("Password")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password")
		if err != nil {
			return err
		}
		if err := forms.PasswordConfirmation(first, confirm); err != nil {
			return err
		}
		password = first
	}

	if err := forms.Credentials(email, password); err != nil {
		return err
	}

	d, err := newDeps()
	if err != nil {
		return err
	}

	fmt.Printf("Creating account on %s...\n", d.apiURL)

	// Registration never establishes a session; log in afterwards.
	if !d.manager.Register(email, password) {
		return errors.New("registration failed")
	}

	fmt.Println("Run 'leadmart login' to sign in.")

	return nil
}
