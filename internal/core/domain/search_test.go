package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchesQuery(t *testing.T) {
	c := Campaign{
		Name:   "Acme Summer Push",
		Client: "Acme Corp",
		Status: StatusActive,
		Notes:  "Waiting on tracking links",
	}

	require.True(t, c.MatchesQuery("acme"))
	require.True(t, c.MatchesQuery("SUMMER"))
	require.True(t, c.MatchesQuery("active"))
	require.True(t, c.MatchesQuery("tracking"))
	require.True(t, c.MatchesQuery("  acme  ")) // query is trimmed
	require.True(t, c.MatchesQuery(""))
	require.False(t, c.MatchesQuery("globex"))
}

func TestMatchesQueryIgnoresHiddenFields(t *testing.T) {
	c := Campaign{
		Name:        "Acme",
		Client:      "Acme Corp",
		Status:      StatusActive,
		SpecURL:     "https://example.com/secret-path",
		PDFFilename: "internal-v3.pdf",
	}
	require.False(t, c.MatchesQuery("secret-path"))
	require.False(t, c.MatchesQuery("internal-v3"))
}

func TestFilterCampaignsPreservesOrder(t *testing.T) {
	in := []Campaign{
		{ID: 1, Name: "Acme A", Client: "Acme"},
		{ID: 2, Name: "Globex", Client: "Globex"},
		{ID: 3, Name: "Acme B", Client: "Acme"},
	}
	out := FilterCampaigns(in, "acme")
	require.Len(t, out, 2)
	require.Equal(t, int64(1), out[0].ID)
	require.Equal(t, int64(3), out[1].ID)

	require.Equal(t, in, FilterCampaigns(in, " "))
}
