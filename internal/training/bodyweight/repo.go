package bodyweight

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitflow/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrEntryNotFound = errors.New("body weight entry not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const entryColumns = `id, user_id, weight_kg::float8, date, notes, created_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var (
		e    Entry
		date time.Time
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.WeightKg, &date, &e.Notes, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Date = date.Format(DateLayout)
	return &e, nil
}

// Upsert stores the weight for a date. A second entry for the same date
// replaces the weight and notes of the first.
func (r *Repo) Upsert(ctx context.Context, userID int, date time.Time, weightKg float64, notes *string) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.upsert")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("user.id", userID))

	return scanEntry(r.db.QueryRow(ctx, `
		INSERT INTO body_weight (user_id, weight_kg, date, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, date) DO UPDATE SET
			weight_kg = EXCLUDED.weight_kg,
			notes = EXCLUDED.notes
		RETURNING `+entryColumns,
		userID, weightKg, date, notes,
	))
}

// List returns the user's entries, newest first.
func (r *Repo) List(ctx context.Context, userID, limit int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+entryColumns+`
		FROM body_weight
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}

	return entries, rows.Err()
}

// LatestOnOrBefore returns the newest entry dated on or before the given day,
// nil when there is none.
func (r *Repo) LatestOnOrBefore(ctx context.Context, userID int, day time.Time) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.latest_on_or_before")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	e, err := scanEntry(r.db.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM body_weight
		WHERE user_id = $1 AND date <= $2
		ORDER BY date DESC, created_at DESC
		LIMIT 1
	`, userID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return e, nil
}

func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM body_weight WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}
