package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/leadmart-dev/leadmart/internal/cli/client"
	"github.com/leadmart-dev/leadmart/internal/cli/guard"
)

// NewPurchasesCmd creates the purchases command group
func NewPurchasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purchases",
		Short: "View and download purchased lead data",
	}

	cmd.AddCommand(newPurchasesListCmd())
	cmd.AddCommand(newPurchasesDownloadCmd())

	return cmd
}

func newPurchasesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list", "history"},
		Short:   "Show purchase history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurchaseHistory()
		},
	}
}

func newPurchasesDownloadCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "download <purchase-id>",
		Short: "Download a purchase's data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid purchase id %q", args[0])
			}
			return runDownloadPurchase(id, outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to save the file into (default current directory)")

	return cmd
}

// purchaseHistorian is the slice of the API client the history listing
// needs; tests substitute a mock.
type purchaseHistorian interface {
	PurchaseHistory() ([]client.Purchase, error)
}

type historyOptions struct {
	client purchaseHistorian
	state  guard.SessionState
	out    io.Writer
}

// HistoryOption overrides a history dependency.
type HistoryOption func(*historyOptions)

// WithHistoryClient injects the API client used for the listing.
func WithHistoryClient(c purchaseHistorian) HistoryOption {
	return func(o *historyOptions) { o.client = c }
}

// WithHistoryState injects the session state the guard consults.
func WithHistoryState(s guard.SessionState) HistoryOption {
	return func(o *historyOptions) { o.state = s }
}

// WithHistoryOutput redirects the listing output.
func WithHistoryOutput(w io.Writer) HistoryOption {
	return func(o *historyOptions) { o.out = w }
}

func runPurchaseHistory(opts ...HistoryOption) error {
	options := &historyOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(options)
	}

	if options.client == nil || options.state == nil {
		d, err := newDeps()
		if err != nil {
			return err
		}
		if options.client == nil {
			options.client = d.api
		}
		if options.state == nil {
			options.state = d.manager
		}
	}

	return guard.Run(options.state, options.out, func() error {
		purchases, err := options.client.PurchaseHistory()
		if err != nil {
			return err
		}

		if len(purchases) == 0 {
			fmt.Fprintln(options.out, "No purchases found.")
			fmt.Fprintln(options.out, "\nBrowse the catalog with: leadmart leads ls")
			return nil
		}

		w := tabwriter.NewWriter(options.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tBUNDLE\tQUANTITY\tTOTAL\tSTATUS\tCREATED AT")
		fmt.Fprintln(w, "──\t──────\t────────\t─────\t──────\t──────────")

		for _, purchase := range purchases {
			fmt.Fprintf(w, "%d\t%s\t%d\t$%.2f\t%s\t%s\n",
				purchase.ID,
				purchase.BundleTitle,
				purchase.Quantity,
				purchase.TotalPrice,
				purchase.Status,
				purchase.CreatedAt,
			)
		}

		w.Flush()
		return nil
	})
}

func runDownloadPurchase(id int, outputDir string) error {
	return protected(func(d *deps) error {
		// The file is named after the bundle title, so look the
		// purchase up first.
		purchases, err := d.api.PurchaseHistory()
		if err != nil {
			return err
		}

		title := ""
		for _, purchase := range purchases {
			if purchase.ID == id {
				title = purchase.BundleTitle
				break
			}
		}
		if title == "" {
			return fmt.Errorf("purchase %d not found in history", id)
		}

		data, err := d.api.DownloadPurchase(id)
		if err != nil {
			return err
		}

		filename := client.FilenameForDownload(title, "leads.csv")
		path, err := saveDownload(outputDir, filename, data)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Saved %s (%d bytes)\n", path, len(data))
		return nil
	})
}
