package ledger

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/faraz1977/ai-visionary/internal/domain"
	"github.com/faraz1977/ai-visionary/internal/infra"
)

// Event names recorded in the usage trail.
const (
	EventLogin        = "LOGIN"
	EventJobSucceeded = "JOB_SUCCEEDED"
	EventJobFailed    = "JOB_FAILED"
	EventUpgrade      = "UPGRADE"
)

const schema = `
CREATE TABLE IF NOT EXISTS usage_events (
    id          BIGSERIAL PRIMARY KEY,
    session_id  TEXT NOT NULL,
    event       TEXT NOT NULL,
    tool        TEXT NOT NULL DEFAULT '',
    credits     INT  NOT NULL DEFAULT 0,
    detail      TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const insertEvent = `
INSERT INTO usage_events (session_id, event, tool, credits, detail)
VALUES ($1, $2, $3, $4, $5);`

// Recorder appends usage events to Postgres. It is an audit trail only:
// session and account state never round-trips through it, so a nil
// recorder (no DATABASE_URL) changes nothing about the product behavior.
// Every method is nil-safe and failures are logged, never surfaced.
type Recorder struct {
	pool   *pgxpool.Pool
	logger infra.Logger
}

// NewRecorder wires the recorder and ensures the events table exists.
func NewRecorder(ctx context.Context, pool *pgxpool.Pool, logger infra.Logger) (*Recorder, error) {
	r := &Recorder{pool: pool, logger: logger}
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, err
	}
	return r, nil
}

// Login records a session start.
func (r *Recorder) Login(ctx context.Context, sessionID string) {
	r.record(ctx, sessionID, EventLogin, "", 0, "")
}

// Job records a finished edit job with the credits it actually cost.
// Failed jobs carry zero credits: no debit happened.
func (r *Recorder) Job(ctx context.Context, sessionID string, job domain.EditJob, creditsSpent int) {
	event := EventJobSucceeded
	if job.Status == domain.JobStatusFailed {
		event = EventJobFailed
	}
	r.record(ctx, sessionID, event, string(job.Tool), creditsSpent, job.Error)
}

// Upgrade records a completed checkout.
func (r *Recorder) Upgrade(ctx context.Context, sessionID string) {
	r.record(ctx, sessionID, EventUpgrade, "", 0, "")
}

func (r *Recorder) record(ctx context.Context, sessionID, event, tool string, credits int, detail string) {
	if r == nil || r.pool == nil {
		return
	}
	if _, err := r.pool.Exec(ctx, insertEvent, sessionID, event, tool, credits, detail); err != nil {
		r.logger.Warn().Err(err).Str("event", event).Msg("ledger: record failed")
	}
}
