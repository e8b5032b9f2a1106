package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leadmart-dev/leadmart/internal/cli/client"
	"github.com/leadmart-dev/leadmart/internal/cli/forms"
)

// NewCustomCmd creates the custom-leads command group
func NewCustomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Request and manage custom lead batches",
	}

	cmd.AddCommand(newCustomCreateCmd())
	cmd.AddCommand(newCustomListCmd())
	cmd.AddCommand(newCustomSampleCmd())
	cmd.AddCommand(newCustomConfirmCmd())
	cmd.AddCommand(newCustomDownloadCmd())

	return cmd
}

func newCustomCreateCmd() *cobra.Command {
	var req client.CustomLeadRequest
	var specFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a custom lead request",
		Long: `Submit a request for a bespoke batch of leads.

The request can be given with flags or loaded from a YAML file:

  industry: Fintech
  location: Berlin
  quantity: 500
  additionalNotes: Series A and later only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if specFile != "" {
				data, err := os.ReadFile(specFile)
				if err != nil {
					return fmt.Errorf("failed to read request file: %w", err)
				}
				if err := yaml.Unmarshal(data, &req); err != nil {
					return fmt.Errorf("failed to parse request file: %w", err)
				}
			}
			return runCustomCreate(req)
		},
	}

	cmd.Flags().StringVar(&req.Industry, "industry", "", "Target industry")
	cmd.Flags().StringVar(&req.Location, "location", "", "Target location")
	cmd.Flags().IntVar(&req.Quantity, "quantity", 0, "Number of leads")
	cmd.Flags().StringVar(&req.AdditionalNotes, "notes", "", "Additional requirements")
	cmd.Flags().StringVarP(&specFile, "file", "f", "", "YAML file describing the request")

	return cmd
}

func newCustomListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List custom lead requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomList()
		},
	}
}

func newCustomSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample <request-id>",
		Short: "Preview sample records from a fulfilled request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "request")
			if err != nil {
				return err
			}
			return runCustomSample(id)
		},
	}
}

func newCustomConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <request-id>",
		Short: "Accept a quoted custom lead request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "request")
			if err != nil {
				return err
			}
			return runCustomConfirm(id)
		},
	}
}

func newCustomDownloadCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "download <request-id>",
		Short: "Download an assembled custom batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "request")
			if err != nil {
				return err
			}
			return runCustomDownload(id, outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to save the file into (default current directory)")

	return cmd
}

func parseID(raw, kind string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", kind, raw)
	}
	return id, nil
}

func runCustomCreate(req client.CustomLeadRequest) error {
	if err := forms.CustomLeadForm(req.Industry, req.Location, req.Quantity); err != nil {
		return err
	}

	return protected(func(d *deps) error {
		lead, err := d.api.CreateCustomLead(req)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Custom lead request submitted (id %d, status %s)\n", lead.ID, lead.Status)
		fmt.Printf("\nCheck progress with: leadmart custom ls\n")
		return nil
	})
}

func runCustomList() error {
	return protected(func(d *deps) error {
		leads, err := d.api.ListCustomLeads()
		if err != nil {
			return err
		}

		if len(leads) == 0 {
			fmt.Println("No custom lead requests found.")
			fmt.Println("\nSubmit one with: leadmart custom create")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tINDUSTRY\tLOCATION\tQUANTITY\tSTATUS\tTOTAL\tCREATED AT")
		fmt.Fprintln(w, "──\t────────\t────────\t────────\t──────\t─────\t──────────")

		for _, lead := range leads {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t$%.2f\t%s\n",
				lead.ID,
				lead.Industry,
				lead.Location,
				lead.Quantity,
				lead.Status,
				lead.TotalPrice,
				lead.CreatedAt,
			)
		}

		w.Flush()
		return nil
	})
}

func runCustomSample(id int) error {
	return protected(func(d *deps) error {
		records, err := d.api.CustomLeadSample(id)
		if err != nil {
			return err
		}

		printSamples(os.Stdout, records)
		return nil
	})
}

func runCustomConfirm(id int) error {
	return protected(func(d *deps) error {
		lead, err := d.api.ConfirmCustomLead(id)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Request %d confirmed (status %s, total $%.2f)\n", lead.ID, lead.Status, lead.TotalPrice)
		return nil
	})
}

func runCustomDownload(id int, outputDir string) error {
	return protected(func(d *deps) error {
		// The file is named after the request's industry.
		leads, err := d.api.ListCustomLeads()
		if err != nil {
			return err
		}

		industry := ""
		for _, lead := range leads {
			if lead.ID == id {
				industry = lead.Industry
				break
			}
		}
		if industry == "" {
			return fmt.Errorf("custom lead request %d not found", id)
		}

		data, err := d.api.DownloadCustomLead(id)
		if err != nil {
			return err
		}

		filename := client.FilenameForDownload(industry, "custom_leads.csv")
		path, err := saveDownload(outputDir, filename, data)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Saved %s (%d bytes)\n", path, len(data))
		return nil
	})
}
