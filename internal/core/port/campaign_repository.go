package port

import (
	"context"

	"spec-tracker/internal/core/domain"
)

// CampaignRepository defines the persistence layer for campaign specs. It
// is an outbound port in hexagonal architecture. The database is the
// single source of truth; the read-through cache sits above this layer
// and has no authority.
type CampaignRepository interface {
	// CreateCampaign inserts a new campaign and returns its id. The
	// last-updated timestamp is server-assigned.
	CreateCampaign(ctx context.Context, c domain.Campaign) (int64, error)
	// ListCampaigns returns all campaigns ordered by name ascending. No
	// rows is an empty slice, not an error.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// GetCampaign returns a campaign by id, or nil when absent.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// UpdateCampaign replaces the editable fields (name, client, status,
	// payment model, cpa, spec url, notes) and bumps last_updated. It
	// returns ErrNotFound when the id does not exist. It never touches
	// the notes history or the attachment pointer.
	UpdateCampaign(ctx context.Context, id int64, c domain.Campaign) error
	// DeleteCampaign removes the campaign and all of its history and
	// version rows in one transaction, verifying the row is gone before
	// reporting success. ErrNotFound when the id never existed,
	// ErrTransaction when any step fails (nothing is deleted).
	DeleteCampaign(ctx context.Context, id int64) error

	// SaveNotes updates the campaign's current notes and last_updated and
	// appends a history entry, both in one transaction. ErrTransaction on
	// failure with no partial state.
	SaveNotes(ctx context.Context, campaignID int64, notes, editor string) error
	// LatestEdit returns the most recent history entry, or nil when the
	// campaign has no edits yet.
	LatestEdit(ctx context.Context, campaignID int64) (*domain.NotesEntry, error)
	// NotesHistory returns up to limit entries most-recent-first. A limit
	// of zero or less returns the full history.
	NotesHistory(ctx context.Context, campaignID int64, limit int) ([]domain.NotesEntry, error)

	// NextSpecVersion returns max(version)+1 for the campaign, or 1 when
	// no versions exist. Not atomic with InsertSpecVersion; the unique
	// constraint on (campaign_id, version) catches the race.
	NextSpecVersion(ctx context.Context, campaignID int64) (int, error)
	// InsertSpecVersion appends a version row and points the campaign's
	// pdf_filename at it, in one transaction. ErrConflict on a duplicate
	// (campaign_id, version) pair, ErrTransaction on other failures.
	InsertSpecVersion(ctx context.Context, v domain.SpecVersion) error
	// ListSpecVersions returns all version rows most-recent-version-first.
	ListSpecVersions(ctx context.Context, campaignID int64) ([]domain.SpecVersion, error)
}
