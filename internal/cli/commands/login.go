package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leadmart-dev/leadmart/internal/cli/forms"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the LeadMart marketplace",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set LEADMART_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set LEADMART_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(email, password string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("LEADMART_EMAIL")
	}
	if password == "" {
		password = os.Getenv("LEADMART_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or LEADMART_EMAIL env var)")
	}

	if password == "" {
		prompted, err := promptPassword("Password")
		if err != nil {
			return err
		}
		password = prompted
	}

	// Validated locally; bad input never reaches the backend.
	if err := forms.Credentials(email, password); err != nil {
		return err
	}

	d, err := newDeps()
	if err != nil {
		return err
	}

	fmt.Printf("Logging in to %s...\n", d.apiURL)

	if !d.manager.Login(email, password) {
		return errors.New("login failed")
	}

	current := d.manager.Current()
	fmt.Printf("  User: %s (id %d)\n", current.Email, current.UserID)

	return nil
}
