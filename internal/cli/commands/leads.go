package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/leadmart-dev/leadmart/internal/cli/client"
)

// NewLeadsCmd creates the leads command group
func NewLeadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Browse the lead-bundle catalog",
	}

	cmd.AddCommand(newLeadsListCmd())
	cmd.AddCommand(newLeadsSampleCmd())

	return cmd
}

func newLeadsListCmd() *cobra.Command {
	var industry, region string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List available lead bundles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListLeads(client.LeadFilter{Industry: industry, Region: region})
		},
	}

	cmd.Flags().StringVar(&industry, "industry", "", "Filter by industry")
	cmd.Flags().StringVar(&region, "region", "", "Filter by region")

	return cmd
}

func newLeadsSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample <bundle-id>",
		Short: "Preview sample records from a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid bundle id %q", args[0])
			}
			return runLeadSample(id)
		},
	}
}

// leadsLister is the slice of the API client the listing needs; tests
// substitute a mock.
type leadsLister interface {
	ListLeads(filter client.LeadFilter) ([]client.LeadBundle, error)
}

type listLeadsOptions struct {
	client leadsLister
	out    io.Writer
}

// ListLeadsOption overrides a listing dependency.
type ListLeadsOption func(*listLeadsOptions)

// WithLeadsClient injects the API client used for listing.
func WithLeadsClient(c leadsLister) ListLeadsOption {
	return func(o *listLeadsOptions) { o.client = c }
}

// WithLeadsOutput redirects the listing output.
func WithLeadsOutput(w io.Writer) ListLeadsOption {
	return func(o *listLeadsOptions) { o.out = w }
}

// Browsing the catalog needs no session; the endpoint is public.
func runListLeads(filter client.LeadFilter, opts ...ListLeadsOption) error {
	options := &listLeadsOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(options)
	}

	if options.client == nil {
		d, err := newDeps()
		if err != nil {
			return err
		}
		options.client = d.api
	}

	bundles, err := options.client.ListLeads(filter)
	if err != nil {
		return err
	}

	if len(bundles) == 0 {
		fmt.Fprintln(options.out, "No lead bundles found.")
		return nil
	}

	w := tabwriter.NewWriter(options.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tINDUSTRY\tREGION\tLEADS\tPRICE/LEAD")
	fmt.Fprintln(w, "──\t─────\t────────\t──────\t─────\t──────────")

	for _, bundle := range bundles {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t$%.2f\n",
			bundle.ID,
			bundle.Title,
			bundle.Industry,
			bundle.Region,
			bundle.LeadCount,
			bundle.PricePerLead,
		)
	}

	w.Flush()

	return nil
}

func runLeadSample(id int) error {
	d, err := newDeps()
	if err != nil {
		return err
	}

	records, err := d.api.LeadSample(id)
	if err != nil {
		return err
	}

	printSamples(os.Stdout, records)
	return nil
}
