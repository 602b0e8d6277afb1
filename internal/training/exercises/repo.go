package exercises

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitflow/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrExerciseNotFound = errors.New("exercise not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const exerciseColumns = `id, name, primary_muscle_group, muscle_groups, equipment, movement_pattern,
	difficulty, default_sets, default_reps, default_rir, description`

func scanExercise(row pgx.Row) (*Exercise, error) {
	var e Exercise
	if err := row.Scan(
		&e.ID, &e.Name, &e.PrimaryMuscleGroup, &e.MuscleGroups, &e.Equipment, &e.MovementPattern,
		&e.Difficulty, &e.DefaultSets, &e.DefaultReps, &e.DefaultRIR, &e.Description,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) List(ctx context.Context, filter Filter) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var (
		conditions []string
		args       []any
	)
	addCondition := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if groups := filter.MuscleGroups(); len(groups) > 0 {
		addCondition("(primary_muscle_group = ANY($%[1]d::text[]) OR muscle_groups ?| $%[1]d::text[])", groups)
	}
	if filter.Equipment != "" {
		addCondition("equipment = $%d", filter.Equipment)
	}
	if filter.MovementPattern != "" {
		addCondition("movement_pattern = $%d", filter.MovementPattern)
	}
	if filter.Difficulty != "" {
		addCondition("difficulty = $%d", filter.Difficulty)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+exerciseColumns+`
		FROM exercises
		`+where+`
		ORDER BY name
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]Exercise, 0)
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *e)
	}

	return exercises, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	e, err := scanExercise(r.db.QueryRow(ctx, `
		SELECT `+exerciseColumns+`
		FROM exercises
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	return e, nil
}

// Upsert adds the exercise to the library or updates the one with the same name.
func (r *Repo) Upsert(ctx context.Context, e *Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.upsert")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return scanExercise(r.db.QueryRow(ctx, `
		INSERT INTO exercises (
			name, primary_muscle_group, muscle_groups, equipment, movement_pattern,
			difficulty, default_sets, default_reps, default_rir, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (name) DO UPDATE SET
			primary_muscle_group = EXCLUDED.primary_muscle_group,
			muscle_groups = EXCLUDED.muscle_groups,
			equipment = EXCLUDED.equipment,
			movement_pattern = EXCLUDED.movement_pattern,
			difficulty = EXCLUDED.difficulty,
			default_sets = EXCLUDED.default_sets,
			default_reps = EXCLUDED.default_reps,
			default_rir = EXCLUDED.default_rir,
			description = EXCLUDED.description
		RETURNING `+exerciseColumns,
		e.Name, e.PrimaryMuscleGroup, e.MuscleGroups, e.Equipment, e.MovementPattern,
		e.Difficulty, e.DefaultSets, e.DefaultReps, e.DefaultRIR, e.Description,
	))
}

// LastPerformance returns the user's sets of the exercise from the latest completed
// workout that has any, nil when there is none.
func (r *Repo) LastPerformance(ctx context.Context, userID, exerciseID int) (_ *LastPerformance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.last_performance")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var (
		workoutID int
		date      time.Time
	)
	err = r.db.QueryRow(ctx, `
		SELECT w.id, w.date
		FROM workouts w
		WHERE w.user_id = $1
			AND w.status = 'completed'
			AND EXISTS (SELECT 1 FROM sets s WHERE s.workout_id = w.id AND s.exercise_id = $2)
		ORDER BY w.date DESC, w.completed_at DESC NULLS LAST
		LIMIT 1
	`, userID, exerciseID).Scan(&workoutID, &date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT weight_kg::float8, reps, rir
		FROM sets
		WHERE workout_id = $1 AND exercise_id = $2
		ORDER BY set_number
	`, workoutID, exerciseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perf := &LastPerformance{
		LastWorkoutDate: date.Format("2006-01-02"),
		Sets:            make([]SetPerformance, 0),
	}
	for rows.Next() {
		var s SetPerformance
		if err := rows.Scan(&s.WeightKg, &s.Reps, &s.RIR); err != nil {
			return nil, err
		}
		perf.Sets = append(perf.Sets, s)
	}

	return perf, rows.Err()
}
