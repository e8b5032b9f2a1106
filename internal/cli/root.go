package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leadmart-dev/leadmart/internal/cli/commands"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "leadmart",
	Short: "LeadMart - Sales-lead marketplace client",
	Long: `LeadMart CLI - Browse, sample and purchase sales-lead bundles,
request custom batches, and manage refunds from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("leadmart version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewLeadsCmd())
	rootCmd.AddCommand(commands.NewBuyCmd())
	rootCmd.AddCommand(commands.NewPurchasesCmd())
	rootCmd.AddCommand(commands.NewCustomCmd())
	rootCmd.AddCommand(commands.NewRefundsCmd())
	rootCmd.AddCommand(commands.NewConfigCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
