package domain

import "time"

// SpecVersion records one uploaded spec PDF for a campaign. Versions for a
// fixed campaign are strictly increasing integers starting at 1. Filename
// is a sanitized basename, never a path; the on-disk location is derived
// from the campaign id.
type SpecVersion struct {
	ID         int64
	CampaignID int64
	Version    int
	Filename   string
	UploadedBy string
	UploadedAt time.Time
}
