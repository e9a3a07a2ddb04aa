package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"spec-tracker/internal/cache"
	"spec-tracker/internal/core/domain"
	"spec-tracker/internal/core/port"
	"spec-tracker/internal/storage"
)

// defaultHistoryLimit is how many notes-history entries a plain history
// read returns when the caller does not ask for a specific amount.
const defaultHistoryLimit = 5

// maxUploadAttempts bounds the retry loop around the version-number race:
// two concurrent uploads can compute the same next version, the unique
// constraint rejects one, and it recomputes.
const maxUploadAttempts = 3

// CampaignService implements port.CampaignUseCase. It validates input,
// orchestrates the repository and the file store for spec uploads, and
// serves reads through a fixed-TTL memo that every successful write
// invalidates.
type CampaignService struct {
	repo   port.CampaignRepository
	files  port.FileStore
	memo   *cache.Memo
	logger *slog.Logger

	liveTTL    time.Duration
	historyTTL time.Duration

	// invalidators are notified after each successful write. The memo is
	// always subscribed; more can be registered with OnWrite.
	invalidators []port.Invalidator

	now func() time.Time // test hook for filename timestamps
}

// NewCampaignService creates the service. The memo is subscribed to the
// write-invalidation signal. liveTTL applies to campaign list reads,
// historyTTL to notes-history and spec-version reads.
func NewCampaignService(repo port.CampaignRepository, files port.FileStore, memo *cache.Memo,
	logger *slog.Logger, liveTTL, historyTTL time.Duration) *CampaignService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CampaignService{
		repo:         repo,
		files:        files,
		memo:         memo,
		logger:       logger,
		liveTTL:      liveTTL,
		historyTTL:   historyTTL,
		invalidators: []port.Invalidator{memo},
		now:          time.Now,
	}
}

// OnWrite registers an additional invalidator to be notified after every
// successful write operation.
func (s *CampaignService) OnWrite(inv port.Invalidator) {
	s.invalidators = append(s.invalidators, inv)
}

func (s *CampaignService) notifyWrite() {
	for _, inv := range s.invalidators {
		inv.Invalidate()
	}
}

func getCached[T any](m *cache.Memo, key string) (T, bool) {
	var zero T
	v, ok := m.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// validate checks the editable fields shared by create and update.
func validate(req port.CampaignRequest) (port.CampaignRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Client = strings.TrimSpace(req.Client)
	if req.Name == "" {
		return req, fmt.Errorf("%w: name is required", port.ErrValidation)
	}
	if req.Client == "" {
		return req, fmt.Errorf("%w: client is required", port.ErrValidation)
	}
	if req.Status == "" {
		req.Status = domain.StatusActive
	}
	if !domain.ValidStatus(req.Status) {
		return req, fmt.Errorf("%w: unknown status %q", port.ErrValidation, req.Status)
	}
	if !domain.ValidPaymentModel(req.PaymentModel) {
		return req, fmt.Errorf("%w: unknown payment model %q", port.ErrValidation, req.PaymentModel)
	}
	if req.CPA != nil && *req.CPA < 0 {
		return req, fmt.Errorf("%w: cpa must not be negative", port.ErrValidation)
	}
	return req, nil
}

func campaignFromRequest(req port.CampaignRequest) domain.Campaign {
	return domain.Campaign{
		Name:         req.Name,
		Client:       req.Client,
		Status:       req.Status,
		PaymentModel: req.PaymentModel,
		CPA:          req.CPA,
		SpecURL:      req.SpecURL,
		Notes:        req.Notes,
	}
}

// CreateCampaign validates the request and inserts a new campaign.
func (s *CampaignService) CreateCampaign(ctx context.Context, req port.CampaignRequest) (int64, error) {
	req, err := validate(req)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.CreateCampaign(ctx, campaignFromRequest(req))
	if err != nil {
		return 0, err
	}
	s.notifyWrite()
	return id, nil
}

// ListCampaigns returns all campaigns ordered by name, through the cache.
func (s *CampaignService) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	const key = "campaigns"
	if campaigns, ok := getCached[[]domain.Campaign](s.memo, key); ok {
		return campaigns, nil
	}
	campaigns, err := s.repo.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	s.memo.Set(key, campaigns, s.liveTTL)
	return campaigns, nil
}

// SearchCampaigns filters the cached list with a case-insensitive
// substring match over name, client, status and notes.
func (s *CampaignService) SearchCampaigns(ctx context.Context, query string) ([]domain.Campaign, error) {
	campaigns, err := s.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterCampaigns(campaigns, query), nil
}

// UpdateCampaign validates and applies a full-record update.
func (s *CampaignService) UpdateCampaign(ctx context.Context, id int64, req port.CampaignRequest) error {
	req, err := validate(req)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateCampaign(ctx, id, campaignFromRequest(req)); err != nil {
		return err
	}
	s.notifyWrite()
	return nil
}

// DeleteCampaign removes the campaign and its history and version rows.
func (s *CampaignService) DeleteCampaign(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCampaign(ctx, id); err != nil {
		return err
	}
	s.notifyWrite()
	return nil
}

// RecordEdit saves new note text and appends a history entry. A blank or
// whitespace-only editor is stored as the "user" sentinel.
func (s *CampaignService) RecordEdit(ctx context.Context, campaignID int64, notes, editor string) error {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		editor = domain.DefaultEditor
	}
	if err := s.repo.SaveNotes(ctx, campaignID, notes, editor); err != nil {
		return err
	}
	s.notifyWrite()
	return nil
}

// LatestEdit returns the most recent notes edit, or nil when none exists.
func (s *CampaignService) LatestEdit(ctx context.Context, campaignID int64) (*domain.NotesEntry, error) {
	key := fmt.Sprintf("latest-edit:%d", campaignID)
	if e, ok := getCached[*domain.NotesEntry](s.memo, key); ok {
		return e, nil
	}
	e, err := s.repo.LatestEdit(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	s.memo.Set(key, e, s.historyTTL)
	return e, nil
}

// NotesHistory returns up to limit entries most-recent-first. A limit of
// zero or less selects the default of 5.
func (s *CampaignService) NotesHistory(ctx context.Context, campaignID int64, limit int) ([]domain.NotesEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.notesHistory(ctx, campaignID, limit)
}

// FullNotesHistory returns the entire history most-recent-first, for
// callers that paginate themselves.
func (s *CampaignService) FullNotesHistory(ctx context.Context, campaignID int64) ([]domain.NotesEntry, error) {
	return s.notesHistory(ctx, campaignID, 0)
}

func (s *CampaignService) notesHistory(ctx context.Context, campaignID int64, limit int) ([]domain.NotesEntry, error) {
	key := fmt.Sprintf("history:%d:%d", campaignID, limit)
	if entries, ok := getCached[[]domain.NotesEntry](s.memo, key); ok {
		return entries, nil
	}
	entries, err := s.repo.NotesHistory(ctx, campaignID, limit)
	if err != nil {
		return nil, err
	}
	s.memo.Set(key, entries, s.historyTTL)
	return entries, nil
}

// UploadSpec stores a new spec PDF for the campaign: it validates the
// campaign and content type, computes the next version number, writes the
// file, then records the version row and the pdf_filename pointer in one
// transaction. A failed transaction deletes the written file. A version
// collision (two uploads racing to the same number) recomputes and
// retries, at most maxUploadAttempts times.
func (s *CampaignService) UploadSpec(ctx context.Context, req port.UploadRequest) (string, error) {
	if !isPDFContentType(req.ContentType) {
		return "", fmt.Errorf("%w: content type %q is not application/pdf", port.ErrValidation, req.ContentType)
	}
	if len(req.Content) == 0 {
		return "", fmt.Errorf("%w: empty upload", port.ErrValidation)
	}

	camp, err := s.repo.GetCampaign(ctx, req.CampaignID)
	if err != nil {
		return "", err
	}
	if camp == nil {
		return "", fmt.Errorf("%w: id %d", port.ErrNotFound, req.CampaignID)
	}

	uploader := strings.TrimSpace(req.Uploader)
	if uploader == "" {
		uploader = domain.DefaultEditor
	}

	if err = s.files.EnsureDir(req.CampaignID); err != nil {
		return "", err
	}

	for attempt := 1; ; attempt++ {
		version, err := s.repo.NextSpecVersion(ctx, req.CampaignID)
		if err != nil {
			return "", err
		}

		filename := specFilename(camp.Name, version, s.now())
		if s.files.Exists(req.CampaignID, filename) {
			return "", fmt.Errorf("%w: file %q already exists", port.ErrConflict, filename)
		}

		if err = s.files.Save(req.CampaignID, filename, req.Content); err != nil {
			return "", err
		}

		err = s.repo.InsertSpecVersion(ctx, domain.SpecVersion{
			CampaignID: req.CampaignID,
			Version:    version,
			Filename:   filename,
			UploadedBy: uploader,
		})
		if err == nil {
			s.notifyWrite()
			return filename, nil
		}

		// metadata failed: the file on disk has no row pointing at it
		if rmErr := s.files.Remove(req.CampaignID, filename); rmErr != nil {
			s.logger.Warn("failed to clean up spec file after aborted upload",
				slog.String("filename", filename), slog.Any("error", rmErr))
		}

		if errors.Is(err, port.ErrConflict) && attempt < maxUploadAttempts {
			continue
		}
		return "", err
	}
}

// NextSpecVersion previews the version number the next upload will get.
// The value is advisory: the upload recomputes it, and the unique
// constraint settles any race.
func (s *CampaignService) NextSpecVersion(ctx context.Context, campaignID int64) (int, error) {
	return s.repo.NextSpecVersion(ctx, campaignID)
}

// InvalidateCache drops all cached reads immediately.
func (s *CampaignService) InvalidateCache() {
	s.notifyWrite()
}

// ListSpecVersions returns the campaign's upload log, newest version first.
func (s *CampaignService) ListSpecVersions(ctx context.Context, campaignID int64) ([]domain.SpecVersion, error) {
	key := fmt.Sprintf("versions:%d", campaignID)
	if versions, ok := getCached[[]domain.SpecVersion](s.memo, key); ok {
		return versions, nil
	}
	versions, err := s.repo.ListSpecVersions(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	s.memo.Set(key, versions, s.historyTTL)
	return versions, nil
}

// ResolveSpecFile maps a stored filename to an on-disk path. Absence is
// ok=false, never an error; the caller decides how to warn.
func (s *CampaignService) ResolveSpecFile(_ context.Context, campaignID int64, filename string) (string, bool) {
	return s.files.Resolve(campaignID, filename)
}

// isPDFContentType accepts "application/pdf" with or without parameters.
// This is an advisory check on the declared type, not a byte-level
// signature check.
func isPDFContentType(ct string) bool {
	mediaType := strings.TrimSpace(strings.SplitN(ct, ";", 2)[0])
	return strings.EqualFold(mediaType, "application/pdf")
}

// specFilename builds the stored filename for an upload. The timestamp
// keeps names unique even when two uploads race to the same version.
func specFilename(campaignName string, version int, at time.Time) string {
	name := storage.SafeBasename(campaignName)
	return fmt.Sprintf("%s - Posting Instructions v%d_%s.pdf", name, version, at.Format("20060102_150405"))
}
