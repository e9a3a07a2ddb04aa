package port

import (
	"context"

	"spec-tracker/internal/core/domain"
)

// CampaignUseCase defines the business operations exposed by the campaign
// spec tracker. This is the primary port into the application; the HTTP
// adapter (and any other presentation layer) calls only this interface.
// All operations are synchronous and return-or-fail.
type CampaignUseCase interface {
	// CreateCampaign validates the request and inserts a new campaign,
	// returning its id. ErrValidation when name or client is blank or an
	// enum value is unknown.
	CreateCampaign(ctx context.Context, req CampaignRequest) (int64, error)
	// ListCampaigns returns all campaigns ordered by name, served through
	// the read cache.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// SearchCampaigns filters the campaign list by a case-insensitive
	// substring match over name, client, status and notes.
	SearchCampaigns(ctx context.Context, query string) ([]domain.Campaign, error)
	// UpdateCampaign validates and applies a full-record update of the
	// editable fields.
	UpdateCampaign(ctx context.Context, id int64, req CampaignRequest) error
	// DeleteCampaign removes the campaign and its history and version rows.
	DeleteCampaign(ctx context.Context, id int64) error

	// RecordEdit saves new note text and appends a history entry. A blank
	// editor is stored as the "user" sentinel.
	RecordEdit(ctx context.Context, campaignID int64, notes, editor string) error
	// LatestEdit returns the most recent notes edit, or nil when none.
	LatestEdit(ctx context.Context, campaignID int64) (*domain.NotesEntry, error)
	// NotesHistory returns up to limit entries most-recent-first; limit
	// of zero or less selects the default of 5. Use FullNotesHistory for
	// pagination over everything.
	NotesHistory(ctx context.Context, campaignID int64, limit int) ([]domain.NotesEntry, error)
	// FullNotesHistory returns the entire history most-recent-first.
	FullNotesHistory(ctx context.Context, campaignID int64) ([]domain.NotesEntry, error)

	// NextSpecVersion previews the version number the next upload will
	// get: max existing version for the campaign plus one, starting at 1.
	NextSpecVersion(ctx context.Context, campaignID int64) (int, error)
	// UploadSpec stores a new spec PDF for the campaign and returns the
	// generated filename. See UploadRequest for inputs.
	UploadSpec(ctx context.Context, req UploadRequest) (string, error)
	// ListSpecVersions returns the campaign's upload log, newest version
	// first.
	ListSpecVersions(ctx context.Context, campaignID int64) ([]domain.SpecVersion, error)
	// ResolveSpecFile maps a stored filename to an on-disk path, checking
	// the per-campaign directory and then the flat legacy directory.
	// Absence is reported as ok=false, not as an error.
	ResolveSpecFile(ctx context.Context, campaignID int64, filename string) (path string, ok bool)

	// InvalidateCache drops all cached reads. Writes already invalidate
	// on their own; this exists for callers that mutate out of band.
	InvalidateCache()
}

// CampaignRequest carries the editable campaign fields for create and
// update operations. It is a DTO used by the HTTP layer and holds no
// domain behaviour.
type CampaignRequest struct {
	Name         string
	Client       string
	Status       string
	PaymentModel string
	CPA          *float64
	SpecURL      string
	Notes        string
}

// UploadRequest carries one spec PDF upload. Content is the whole file;
// uploads are small posting-instruction documents, not streamed media.
type UploadRequest struct {
	CampaignID   int64
	Content      []byte
	OriginalName string
	ContentType  string
	Uploader     string
}
