package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/leadmart-dev/leadmart/internal/cli/client"
	"github.com/leadmart-dev/leadmart/internal/cli/guard"
	"github.com/leadmart-dev/leadmart/internal/cli/session"
	"github.com/leadmart-dev/leadmart/internal/cli/userconfig"
)

// deps bundles the objects every command needs, built once per invocation
// from the user config. Commands that support injection for tests take
// these through functional options instead.
type deps struct {
	apiURL  string
	api     *client.Client
	store   *session.Store
	manager *session.Manager
}

func newDeps() (*deps, error) {
	apiURL, err := userconfig.ResolveAPIURL()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve API URL: %w", err)
	}

	store := session.NewStore()
	api := client.New(apiURL, store)
	manager := session.NewManager(store, api, session.NewTerminalNotifier())

	return &deps{apiURL: apiURL, api: api, store: store, manager: manager}, nil
}

// protected runs an action behind the session guard.
func protected(action func(d *deps) error) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	return guard.Run(d.manager, os.Stdout, func() error {
		return action(d)
	})
}

// promptPassword reads a password without echo. Fails in non-interactive
// mode so that scripts pass credentials explicitly.
func promptPassword(label string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("password is required in non-interactive mode (use --password flag or LEADMART_PASSWORD env var)")
	}

	fmt.Printf("%s: ", label)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()
	return string(bytePassword), nil
}

// printSamples renders preview records as a table. Records are opaque;
// columns are the union of keys in stable order.
func printSamples(out io.Writer, records []client.SampleRecord) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No sample records available.")
		return
	}

	keySet := map[string]bool{}
	for _, record := range records {
		for key := range record {
			keySet[key] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, key := range keys {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, key)
	}
	fmt.Fprintln(w)

	for _, record := range records {
		for i, key := range keys {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			if value, ok := record[key]; ok {
				fmt.Fprintf(w, "%v", value)
			}
		}
		fmt.Fprintln(w)
	}

	w.Flush()
}

// saveDownload writes downloaded bytes into dir under the given filename.
func saveDownload(dir, filename string, data []byte) (string, error) {
	path := filename
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
		path = dir + string(os.PathSeparator) + filename
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}
