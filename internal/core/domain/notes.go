package domain

import "time"

// DefaultEditor is stored when the caller leaves the editor name blank.
const DefaultEditor = "user"

// NotesEntry is one row of a campaign's append-only notes edit history.
// Entries are never updated or deleted except by cascade when the owning
// campaign is deleted.
type NotesEntry struct {
	ID         int64
	CampaignID int64
	Notes      string
	EditedBy   string
	EditedAt   time.Time
}
