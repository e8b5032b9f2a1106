package server

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// sampleSize is how many records preview endpoints return.
const sampleSize = 5

var contactFirstNames = []string{
	"Alex", "Jordan", "Sam", "Taylor", "Morgan", "Casey", "Riley", "Drew",
}

var contactLastNames = []string{
	"Carter", "Nguyen", "Okafor", "Silva", "Kowalski", "Haddad", "Ito", "Berg",
}

// generateLeads produces deterministic fake contact records. The same
// inputs always yield the same records, which keeps downloads and samples
// consistent between calls without storing generated files.
func generateLeads(industry, region string, count int) []map[string]any {
	slug := strings.ToLower(strings.Join(strings.Fields(industry), "-"))
	if slug == "" {
		slug = "leads"
	}

	records := make([]map[string]any, count)
	for i := 0; i < count; i++ {
		first := contactFirstNames[i%len(contactFirstNames)]
		last := contactLastNames[(i/len(contactFirstNames))%len(contactLastNames)]
		company := fmt.Sprintf("%s Group %d", capitalize(slug), i+1)

		records[i] = map[string]any{
			"name":     fmt.Sprintf("%s %s", first, last),
			"company":  company,
			"email":    fmt.Sprintf("%s.%s@%s%d.example.com", strings.ToLower(first), strings.ToLower(last), slug, i+1),
			"phone":    fmt.Sprintf("+1-555-%04d", (i*37)%10000),
			"industry": industry,
			"region":   region,
		}
	}
	return records
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var csvColumns = []string{"name", "company", "email", "phone", "industry", "region"}

// leadsCSV renders records as a CSV file body.
func leadsCSV(records []map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(csvColumns))
	for _, record := range records {
		for i, column := range csvColumns {
			switch value := record[column].(type) {
			case string:
				row[i] = value
			case nil:
				row[i] = ""
			default:
				row[i] = fmt.Sprint(value)
			}
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func parseIntParam(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	return id, err == nil
}

// downloadFilename mirrors the filename the client derives: whitespace
// collapsed to underscores plus a suffix.
func downloadFilename(title, suffix string) string {
	name := strings.Join(strings.Fields(strings.TrimSpace(title)), "_")
	if name == "" {
		return suffix
	}
	return name + "_" + suffix
}
