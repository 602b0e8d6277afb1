package analytics

import (
	"context"
	"time"

	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/internal/training/volume"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// SetCounts returns, per workout date and muscle group, the number of sets logged in the
// user's completed workouts between from and to (inclusive). A set counts once for every
// muscle group its exercise targets.
func (r *Repo) SetCounts(ctx context.Context, userID int, from, to time.Time) (_ []volume.SetCount, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.set_counts")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT w.date, mg.muscle_group, COUNT(*)::int
		FROM sets s
		JOIN workouts w ON w.id = s.workout_id
		JOIN exercises e ON e.id = s.exercise_id
		CROSS JOIN LATERAL jsonb_array_elements_text(e.muscle_groups) AS mg(muscle_group)
		WHERE w.user_id = $1
			AND w.status = 'completed'
			AND w.date >= $2 AND w.date <= $3
		GROUP BY w.date, mg.muscle_group
		ORDER BY w.date, mg.muscle_group
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]volume.SetCount, 0)
	for rows.Next() {
		var c volume.SetCount
		if err := rows.Scan(&c.Date, &c.MuscleGroup, &c.Sets); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// WorkoutSpans returns status and timestamps of every workout of the user.
func (r *Repo) WorkoutSpans(ctx context.Context, userID int) (_ []WorkoutSpan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.workout_spans")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT status, started_at, completed_at
		FROM workouts
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spans := make([]WorkoutSpan, 0)
	for rows.Next() {
		var ws WorkoutSpan
		if err := rows.Scan(&ws.Status, &ws.StartedAt, &ws.CompletedAt); err != nil {
			return nil, err
		}
		spans = append(spans, ws)
	}

	return spans, rows.Err()
}

// LoggedSets returns the sets of an exercise logged in the user's completed workouts
// between from and to (inclusive).
func (r *Repo) LoggedSets(ctx context.Context, userID, exerciseID int, from, to time.Time) (_ []LoggedSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.logged_sets")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	rows, err := r.db.Query(ctx, `
		SELECT w.date, s.weight_kg::float8, s.reps, s.rir
		FROM sets s
		JOIN workouts w ON w.id = s.workout_id
		WHERE w.user_id = $1
			AND s.exercise_id = $2
			AND w.status = 'completed'
			AND w.date >= $3 AND w.date <= $4
		ORDER BY w.date
	`, userID, exerciseID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logged := make([]LoggedSet, 0)
	for rows.Next() {
		var s LoggedSet
		if err := rows.Scan(&s.Date, &s.WeightKg, &s.Reps, &s.RIR); err != nil {
			return nil, err
		}
		logged = append(logged, s)
	}

	return logged, rows.Err()
}
