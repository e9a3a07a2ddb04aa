package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"spec-tracker/internal/core/domain"
	"spec-tracker/internal/core/port"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint
// violation, raised when two uploads race to the same spec version.
const uniqueViolation = "23505"

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, name, client, status, COALESCE(payment_model, ''),
	cpa, COALESCE(pdf_filename, ''), COALESCE(notes, ''), COALESCE(spec_url, ''), last_updated`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.Name, &c.Client, &c.Status, &c.PaymentModel,
		&c.CPA, &c.PDFFilename, &c.Notes, &c.SpecURL, &c.LastUpdated)
	return c, err
}

// CreateCampaign inserts a new campaign row with a server-assigned
// last_updated timestamp and returns the new id.
func (r *CampaignRepository) CreateCampaign(ctx context.Context, c domain.Campaign) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO campaign_specs (name, client, status, payment_model, cpa, spec_url, notes, last_updated)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''), now())
		RETURNING id`,
		c.Name, c.Client, c.Status, c.PaymentModel, c.CPA, c.SpecURL, c.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create campaign: %w", err)
	}
	return id, nil
}

// ListCampaigns returns all campaigns ordered by name ascending.
func (r *CampaignRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaign_specs ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	campaigns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

// GetCampaign returns a campaign by id, or nil when absent.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaign_specs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return &c, nil
}

// UpdateCampaign replaces the editable fields and bumps last_updated. The
// attachment pointer and the notes history are left alone.
func (r *CampaignRepository) UpdateCampaign(ctx context.Context, id int64, c domain.Campaign) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaign_specs
		SET name = $1, client = $2, status = $3, payment_model = NULLIF($4, ''),
		    cpa = $5, spec_url = NULLIF($6, ''), notes = NULLIF($7, ''), last_updated = now()
		WHERE id = $8`,
		c.Name, c.Client, c.Status, c.PaymentModel, c.CPA, c.SpecURL, c.Notes, id)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", port.ErrNotFound, id)
	}
	return nil
}

// DeleteCampaign removes the campaign and all of its child rows in one
// transaction, then verifies the campaign row is gone before committing.
func (r *CampaignRepository) DeleteCampaign(ctx context.Context, id int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin delete: %v", port.ErrTransaction, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM campaign_specs WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("%w: check campaign: %v", port.ErrTransaction, err)
	}
	if !exists {
		return fmt.Errorf("%w: id %d", port.ErrNotFound, id)
	}

	for _, stmt := range []string{
		`DELETE FROM notes_history WHERE campaign_id = $1`,
		`DELETE FROM spec_versions WHERE campaign_id = $1`,
		`DELETE FROM campaign_specs WHERE id = $1`,
	} {
		if _, err = tx.Exec(ctx, stmt, id); err != nil {
			return fmt.Errorf("%w: cascade delete: %v", port.ErrTransaction, err)
		}
	}

	// post-condition: the row must be absent before we report success
	if err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM campaign_specs WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("%w: verify delete: %v", port.ErrTransaction, err)
	}
	if exists {
		return fmt.Errorf("%w: campaign %d still present after delete", port.ErrTransaction, id)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit delete: %v", port.ErrTransaction, err)
	}
	return nil
}

// SaveNotes updates the campaign's current notes and appends a history
// entry; both statements commit together or neither does.
func (r *CampaignRepository) SaveNotes(ctx context.Context, campaignID int64, notes, editor string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin notes edit: %v", port.ErrTransaction, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE campaign_specs SET notes = $1, last_updated = now() WHERE id = $2`,
		notes, campaignID)
	if err != nil {
		return fmt.Errorf("%w: update notes: %v", port.ErrTransaction, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", port.ErrNotFound, campaignID)
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO notes_history (campaign_id, notes, edited_by, edited_at)
		VALUES ($1, $2, $3, now())`,
		campaignID, notes, editor); err != nil {
		return fmt.Errorf("%w: append history: %v", port.ErrTransaction, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit notes edit: %v", port.ErrTransaction, err)
	}
	return nil
}

// LatestEdit returns the most recent history entry, or nil when the
// campaign has no edits yet.
func (r *CampaignRepository) LatestEdit(ctx context.Context, campaignID int64) (*domain.NotesEntry, error) {
	var e domain.NotesEntry
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, COALESCE(notes, ''), edited_by, edited_at
		FROM notes_history WHERE campaign_id = $1
		ORDER BY edited_at DESC LIMIT 1`, campaignID).
		Scan(&e.ID, &e.CampaignID, &e.Notes, &e.EditedBy, &e.EditedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest edit: %w", err)
	}
	return &e, nil
}

// NotesHistory returns up to limit entries most-recent-first; limit <= 0
// returns the full history.
func (r *CampaignRepository) NotesHistory(ctx context.Context, campaignID int64, limit int) ([]domain.NotesEntry, error) {
	query := `SELECT id, campaign_id, COALESCE(notes, ''), edited_by, edited_at
		FROM notes_history WHERE campaign_id = $1 ORDER BY edited_at DESC`
	args := []any{campaignID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("notes history: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.NotesEntry, error) {
		var e domain.NotesEntry
		err := row.Scan(&e.ID, &e.CampaignID, &e.Notes, &e.EditedBy, &e.EditedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("notes history: %w", err)
	}
	return entries, nil
}

// NextSpecVersion returns max(version)+1 for the campaign, starting at 1.
// The read is not atomic with InsertSpecVersion; the unique constraint on
// (campaign_id, version) turns the race into ErrConflict.
func (r *CampaignRepository) NextSpecVersion(ctx context.Context, campaignID int64) (int, error) {
	var next int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM spec_versions WHERE campaign_id = $1`,
		campaignID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next spec version: %w", err)
	}
	return next, nil
}

// InsertSpecVersion appends the version row and updates the campaign's
// pdf_filename pointer in one transaction.
func (r *CampaignRepository) InsertSpecVersion(ctx context.Context, v domain.SpecVersion) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin version insert: %v", port.ErrTransaction, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `
		INSERT INTO spec_versions (campaign_id, version, filename, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, now())`,
		v.CampaignID, v.Version, v.Filename, v.UploadedBy); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: version %d already exists for campaign %d",
				port.ErrConflict, v.Version, v.CampaignID)
		}
		return fmt.Errorf("%w: insert version: %v", port.ErrTransaction, err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE campaign_specs SET pdf_filename = $1, last_updated = now() WHERE id = $2`,
		v.Filename, v.CampaignID)
	if err != nil {
		return fmt.Errorf("%w: update pdf pointer: %v", port.ErrTransaction, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", port.ErrNotFound, v.CampaignID)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit version insert: %v", port.ErrTransaction, err)
	}
	return nil
}

// ListSpecVersions returns the campaign's upload log, newest version first.
func (r *CampaignRepository) ListSpecVersions(ctx context.Context, campaignID int64) ([]domain.SpecVersion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, version, filename, uploaded_by, uploaded_at
		FROM spec_versions WHERE campaign_id = $1 ORDER BY version DESC`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list spec versions: %w", err)
	}
	versions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SpecVersion, error) {
		var v domain.SpecVersion
		err := row.Scan(&v.ID, &v.CampaignID, &v.Version, &v.Filename, &v.UploadedBy, &v.UploadedAt)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("list spec versions: %w", err)
	}
	return versions, nil
}
