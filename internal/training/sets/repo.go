package sets

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrSetNotFound     = errors.New("set not found")
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrInvalidRef      = errors.New("invalid workout or exercise reference")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const setColumns = `id, workout_id, exercise_id, set_number, weight_kg::float8, reps, rir, timestamp, local_id, local_id_numeric, notes, synced`

func scanSet(row pgx.Row) (*Set, error) {
	var (
		s              Set
		localID        *string
		localIDNumeric bool
	)
	if err := row.Scan(
		&s.ID, &s.WorkoutID, &s.ExerciseID, &s.SetNumber,
		&s.WeightKg, &s.Reps, &s.RIR, &s.Timestamp,
		&localID, &localIDNumeric, &s.Notes, &s.Synced,
	); err != nil {
		return nil, err
	}
	if localID != nil {
		id := LocalID{value: *localID, numeric: localIDNumeric}
		s.LocalID = &id
	}
	s.EstimatedOneRM = oneRepMax(s.WeightKg, s.Reps, s.RIR)
	return &s, nil
}

// WorkoutOwner returns the id of the user the workout belongs to.
func (r *Repo) WorkoutOwner(ctx context.Context, workoutID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.workout_owner")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var userID int
	err = r.db.QueryRow(ctx, `SELECT user_id FROM workouts WHERE id = $1`, workoutID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrWorkoutNotFound
		}
		return 0, err
	}
	return userID, nil
}

// Insert stores a set. When the client local id was already stored for the workout, the
// existing row is returned untouched and created is false. Concurrent retries with the
// same local id are settled by the (workout_id, local_id) unique key.
func (r *Repo) Insert(ctx context.Context, params LogParams) (_ *Set, created bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.insert")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("workout.id", params.WorkoutID))

	var (
		localID        *string
		localIDNumeric bool
	)
	if params.LocalID != nil && !params.LocalID.IsZero() {
		s := params.LocalID.String()
		localID = &s
		localIDNumeric = params.LocalID.IsNumeric()
	}

	set, err := scanSet(r.db.QueryRow(ctx, `
		INSERT INTO sets (workout_id, exercise_id, set_number, weight_kg, reps, rir, timestamp, local_id, local_id_numeric, notes, synced)
		VALUES (
			$1, $2,
			COALESCE($3, (SELECT COUNT(*) + 1 FROM sets WHERE workout_id = $1 AND exercise_id = $2)),
			$4, $5, $6, $7, $8, $9, $10, TRUE
		)
		ON CONFLICT (workout_id, local_id) DO NOTHING
		RETURNING `+setColumns,
		params.WorkoutID, params.ExerciseID, params.SetNumber,
		params.WeightKg, params.Reps, params.RIR,
		params.Timestamp, localID, localIDNumeric, params.Notes,
	))
	if err == nil {
		return set, true, nil
	}
	if pkg.IsForeignKeyViolationError(err) {
		return nil, false, ErrInvalidRef
	}
	if !errors.Is(err, pgx.ErrNoRows) || localID == nil {
		return nil, false, fmt.Errorf("insert set: %w", err)
	}

	// conflict on the local id, hand back the stored row
	span.SetAttributes(attribute.Bool("deduplicated", true))
	set, err = scanSet(r.db.QueryRow(ctx, `
		SELECT `+setColumns+`
		FROM sets
		WHERE workout_id = $1 AND local_id = $2
	`, params.WorkoutID, *localID))
	if err != nil {
		return nil, false, fmt.Errorf("get deduplicated set: %w", err)
	}

	return set, false, nil
}

func (r *Repo) ListByWorkout(ctx context.Context, workoutID int) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.list_by_workout")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+setColumns+`
		FROM sets
		WHERE workout_id = $1
		ORDER BY exercise_id, set_number, id
	`, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sets := make([]Set, 0)
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, *s)
	}

	return sets, rows.Err()
}

// Delete removes a set of one of the user's workouts.
func (r *Repo) Delete(ctx context.Context, userID, setID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM sets s
		USING workouts w
		WHERE s.workout_id = w.id AND s.id = $1 AND w.user_id = $2
	`, setID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}

	return nil
}
