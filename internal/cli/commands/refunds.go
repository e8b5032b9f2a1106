package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/leadmart-dev/leadmart/internal/cli/client"
	"github.com/leadmart-dev/leadmart/internal/cli/forms"
)

// NewRefundsCmd creates the refunds command group
func NewRefundsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refunds",
		Short: "Request and track refunds",
	}

	cmd.AddCommand(newRefundsCreateCmd())
	cmd.AddCommand(newRefundsListCmd())

	return cmd
}

func newRefundsCreateCmd() *cobra.Command {
	var req client.RefundRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Request a refund for a purchase",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefundCreate(req)
		},
	}

	cmd.Flags().IntVar(&req.PurchaseID, "purchase", 0, "Purchase id to refund (required)")
	cmd.Flags().StringVar(&req.Reason, "reason", "", "Reason for the refund (required)")
	cmd.Flags().StringVar(&req.SampleData, "sample-data", "", "Examples of the problematic records")

	return cmd
}

func newRefundsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List refund requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefundList()
		},
	}
}

func runRefundCreate(req client.RefundRequest) error {
	if err := forms.RefundForm(req.PurchaseID, req.Reason); err != nil {
		return err
	}

	return protected(func(d *deps) error {
		refund, err := d.api.CreateRefund(req)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Refund request submitted (id %d, status %s)\n", refund.ID, refund.Status)
		return nil
	})
}

func runRefundList() error {
	return protected(func(d *deps) error {
		refunds, err := d.api.ListRefunds()
		if err != nil {
			return err
		}

		if len(refunds) == 0 {
			fmt.Println("No refund requests found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPURCHASE\tREASON\tSTATUS\tCREATED AT")
		fmt.Fprintln(w, "──\t────────\t──────\t──────\t──────────")

		for _, refund := range refunds {
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n",
				refund.ID,
				refund.PurchaseID,
				refund.Reason,
				refund.Status,
				refund.CreatedAt,
			)
		}

		w.Flush()
		return nil
	})
}
