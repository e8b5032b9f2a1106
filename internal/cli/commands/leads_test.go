package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/leadmart-dev/leadmart/internal/cli/client"
)

type fakeLeadsLister struct {
	bundles   []client.LeadBundle
	err       error
	gotFilter client.LeadFilter
}

func (f *fakeLeadsLister) ListLeads(filter client.LeadFilter) ([]client.LeadBundle, error) {
	f.gotFilter = filter
	return f.bundles, f.err
}

func TestRunListLeads_EmptyCatalog(t *testing.T) {
	var out bytes.Buffer

	err := runListLeads(client.LeadFilter{},
		WithLeadsClient(&fakeLeadsLister{}),
		WithLeadsOutput(&out),
	)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No lead bundles found.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestRunListLeads_Table(t *testing.T) {
	var out bytes.Buffer
	lister := &fakeLeadsLister{bundles: []client.LeadBundle{
		{ID: 1, Title: "Tech Startups West Coast", Industry: "tech", Region: "west", LeadCount: 500, PricePerLead: 0.4},
		{ID: 2, Title: "European Fintech", Industry: "fintech", Region: "europe", LeadCount: 300, PricePerLead: 0.65},
	}}

	err := runListLeads(client.LeadFilter{Industry: "tech"},
		WithLeadsClient(lister),
		WithLeadsOutput(&out),
	)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lister.gotFilter.Industry != "tech" {
		t.Errorf("filter not forwarded: %+v", lister.gotFilter)
	}

	got := out.String()
	for _, want := range []string{"ID", "TITLE", "Tech Startups West Coast", "European Fintech", "$0.40", "$0.65", "500", "300"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunListLeads_Error(t *testing.T) {
	var out bytes.Buffer
	wantErr := errors.New("boom")

	err := runListLeads(client.LeadFilter{},
		WithLeadsClient(&fakeLeadsLister{err: wantErr}),
		WithLeadsOutput(&out),
	)

	if !errors.Is(err, wantErr) {
		t.Errorf("expected listing error, got %v", err)
	}
}
