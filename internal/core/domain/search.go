package domain

import "strings"

// MatchesQuery reports whether the campaign matches a free-text search
// query. The match is a case-insensitive substring check over the visible
// fields: name, client, status and notes. An empty query matches
// everything.
func (c Campaign) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{c.Name, c.Client, c.Status, c.Notes} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// FilterCampaigns returns the campaigns matching query, preserving order.
func FilterCampaigns(campaigns []Campaign, query string) []Campaign {
	if strings.TrimSpace(query) == "" {
		return campaigns
	}
	out := make([]Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c.MatchesQuery(query) {
			out = append(out, c)
		}
	}
	return out
}
