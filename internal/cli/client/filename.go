package client

import "strings"

// FilenameForDownload derives a machine filename from a human-readable
// title: whitespace collapses to underscores and the suffix is appended,
// so ("Tech Startups", "leads.csv") becomes "Tech_Startups_leads.csv".
func FilenameForDownload(title, suffix string) string {
	name := strings.Join(strings.Fields(strings.TrimSpace(title)), "_")
	if name == "" {
		return suffix
	}
	return name + "_" + suffix
}
