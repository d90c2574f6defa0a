package syncs

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/daybyday/internal/telemetry/tracing"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 500
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, sync Sync) (_ *Sync, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.syncs.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx, `
		INSERT INTO gymstats_sync (snapshot_id, started_at, duration_ms, workouts, duplicates, auth_mode, trigger, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		sync.SnapshotID,
		sync.StartedAt,
		sync.DurationMs,
		sync.Workouts,
		sync.Duplicates,
		sync.AuthMode,
		sync.Trigger,
		sync.Error,
	).Scan(&sync.ID)
	if err != nil {
		return nil, err
	}
	return &sync, nil
}

// List returns the latest syncs, newest first.
func (r *Repo) List(ctx context.Context, limit int) (_ []Sync, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.syncs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(ctx, `
		SELECT id, snapshot_id, started_at, duration_ms, workouts, duplicates, auth_mode, trigger, error
		FROM gymstats_sync
		ORDER BY started_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Sync, 0)
	for rows.Next() {
		var s Sync
		if err := rows.Scan(
			&s.ID,
			&s.SnapshotID,
			&s.StartedAt,
			&s.DurationMs,
			&s.Workouts,
			&s.Duplicates,
			&s.AuthMode,
			&s.Trigger,
			&s.Error,
		); err != nil {
			return nil, err
		}
		list = append(list, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// Last returns the most recent sync, or nil when there is none.
func (r *Repo) Last(ctx context.Context) (*Sync, error) {
	list, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}
