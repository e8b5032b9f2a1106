package commands

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/leadmart-dev/leadmart/internal/cli/client"
)

// NewBuyCmd creates the buy command
func NewBuyCmd() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "buy [bundle-id]",
		Short: "Purchase leads from a bundle",
		Long: `Purchase a quantity of leads from a bundle.

When no bundle id is given, the catalog is fetched and a bundle can be
picked interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundleID := 0
			if len(args) == 1 {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid bundle id %q", args[0])
				}
				bundleID = id
			}
			return runBuy(bundleID, quantity)
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 0, "Number of leads to purchase (required)")

	return cmd
}

func runBuy(bundleID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be greater than zero (use --quantity)")
	}

	return protected(func(d *deps) error {
		if bundleID == 0 {
			selected, err := promptBundleSelection(d.api)
			if err != nil {
				return err
			}
			bundleID = selected
		}

		purchase, err := d.api.CreatePurchase(bundleID, quantity)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Purchase created\n")
		fmt.Printf("  Bundle:   %s\n", purchase.BundleTitle)
		fmt.Printf("  Quantity: %d\n", purchase.Quantity)
		fmt.Printf("  Total:    $%.2f\n", purchase.TotalPrice)
		fmt.Printf("\nDownload with: leadmart purchases download %d\n", purchase.ID)

		return nil
	})
}

// promptBundleSelection shows an interactive prompt to pick a bundle from
// the catalog.
func promptBundleSelection(api *client.Client) (int, error) {
	bundles, err := api.ListLeads(client.LeadFilter{})
	if err != nil {
		return 0, err
	}

	if len(bundles) == 0 {
		return 0, fmt.Errorf("no lead bundles available")
	}

	labels := make([]string, len(bundles))
	for i, bundle := range bundles {
		labels[i] = fmt.Sprintf("%s [%s / %s] (%d leads, $%.2f/lead)",
			bundle.Title, bundle.Industry, bundle.Region, bundle.LeadCount, bundle.PricePerLead)
	}

	prompt := promptui.Select{
		Label: "Select a lead bundle",
		Items: labels,
		Size:  10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("bundle selection cancelled: %w", err)
	}

	return bundles[index].ID, nil
}
