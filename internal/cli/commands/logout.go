package commands

import (
	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

// Logout is safe to run while already logged out.
func runLogout() error {
	d, err := newDeps()
	if err != nil {
		return err
	}

	d.manager.Logout()
	return nil
}
