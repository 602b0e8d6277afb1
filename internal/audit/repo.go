package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitflow/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultListLimit = 100
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

func (r *Repo) Record(ctx context.Context, event Event) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.audit.record")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("type", event.Type.String()))

	if !event.Type.IsValid() {
		return fmt.Errorf("invalid audit event type: %s", event.Type)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO audit_events (user_id, event_type, ip_address, timestamp, details)
		VALUES ($1, $2, $3, $4, $5)
	`,
		event.UserID,
		event.Type,
		event.IPAddress,
		event.Timestamp,
		event.Data,
	)
	return err
}

// ListByUser returns the user's latest events, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID, limit int) (_ []Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.audit.list_by_user")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("limit", limit))

	return r.list(ctx, `WHERE user_id = $1 ORDER BY timestamp DESC, id DESC LIMIT $2`, userID, clampLimit(limit))
}

// ListBetween returns the events of all users within [from, to], newest first.
func (r *Repo) ListBetween(ctx context.Context, from, to time.Time, limit int) (_ []Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.audit.list_between")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("from", from.String()), attribute.String("to", to.String()))

	return r.list(ctx, `WHERE timestamp >= $1 AND timestamp <= $2 ORDER BY timestamp DESC, id DESC LIMIT $3`, from, to, clampLimit(limit))
}

func (r *Repo) list(ctx context.Context, where string, args ...any) ([]Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, event_type, ip_address, timestamp, details
		FROM audit_events
		`+where, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.IPAddress, &e.Timestamp, &e.Data); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
