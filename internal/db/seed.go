package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo campaigns so a fresh install has something to render.
// Attachment pointers are left NULL because no files exist on disk yet;
// uploads create them. Inserts are idempotent per campaign name.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	demo := []struct {
		name, client, status, paymentModel, specURL, notes string
		cpa                                                float64
	}{
		{
			name: "AffiMedia", client: "AffiMedia", status: "Active",
			paymentModel: "CPL", cpa: 32.50,
			specURL: "https://example.com/posting-instructions/affimedia",
			notes:   "Server-to-server posting. Dedupe window 30 days.",
		},
		{
			name: "Tort Experts LLC", client: "Tort Experts", status: "Active",
			paymentModel: "PPR", cpa: 0,
			specURL: "https://example.com/posting-instructions/tort-experts",
			notes:   "Revenue share per retained case.",
		},
		{
			name: "NIB Direct", client: "NIB Direct", status: "Pending",
			paymentModel: "CPL", cpa: 45,
			specURL: "https://example.com/posting-instructions/nib-direct",
			notes:   "",
		},
	}

	for _, c := range demo {
		var exists bool
		if err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM campaign_specs WHERE name = $1)`, c.name).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}

		var cpa *float64
		if c.cpa > 0 {
			v := c.cpa
			cpa = &v
		}
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO campaign_specs (name, client, status, payment_model, cpa, spec_url, notes, last_updated)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), now())
			RETURNING id`,
			c.name, c.client, c.status, c.paymentModel, cpa, c.specURL, c.notes).Scan(&id)
		if err != nil {
			return err
		}

		if c.notes != "" {
			if _, err = pool.Exec(ctx, `
				INSERT INTO notes_history (campaign_id, notes, edited_by, edited_at)
				VALUES ($1, $2, 'user', now())`, id, c.notes); err != nil {
				return err
			}
		}
	}
	return nil
}
