package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leadmart-dev/leadmart/internal/cli/userconfig"
)

// NewConfigCmd creates the config command group
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage local CLI configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get-url",
		Short: "Print the configured API base URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiURL, err := userconfig.ResolveAPIURL()
			if err != nil {
				return err
			}
			fmt.Println(apiURL)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-url <url>",
		Short: "Set the API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := userconfig.SetAPIURL(args[0]); err != nil {
				return err
			}
			fmt.Printf("API URL set to %s\n", args[0])
			return nil
		},
	})

	return cmd
}
