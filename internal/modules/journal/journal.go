// README: Pairing audit journal backed by PostgreSQL.
package journal

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"carpools/internal/modules/schedule"
	"carpools/internal/types"
)

// Via values for how a rider ended up on a drive.
const (
	ViaMatched    = "matched"
	ViaSelfSignup = "self_signup"
)

// Schema creates the journal table. Applied out of band; kept here so the
// table shape lives next to the writes.
const Schema = `
CREATE TABLE IF NOT EXISTS pairing_events (
    id          BIGSERIAL PRIMARY KEY,
    drive_id    TEXT        NOT NULL,
    rider_id    TEXT        NOT NULL,
    iso_year    INT         NOT NULL,
    iso_week    INT         NOT NULL,
    matched_via TEXT        NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL
);`

type PairingEvent struct {
	DriveID   types.ID
	RiderID   types.ID
	Week      schedule.WeekKey
	Via       string
	CreatedAt time.Time
}

// Journal appends pairing events for audit and reporting. Fairness
// counting does not read from it; drives stay authoritative. Writes are
// best-effort at the call sites.
type Journal struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Journal {
	return &Journal{db: db}
}

func (j *Journal) Append(ctx context.Context, e PairingEvent) error {
	if j == nil || j.db == nil {
		return nil
	}
	_, err := j.db.Exec(ctx, `
        INSERT INTO pairing_events (
            drive_id, rider_id, iso_year, iso_week, matched_via, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.DriveID),
		string(e.RiderID),
		e.Week.Year,
		e.Week.Week,
		e.Via,
		e.CreatedAt,
	)
	return err
}
