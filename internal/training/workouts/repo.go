package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitflow/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrWorkoutNotFound    = errors.New("workout not found")
	ErrProgramDayNotFound = errors.New("program day not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const workoutColumns = `
	w.id, w.user_id, w.program_day_id, w.date, w.started_at, w.completed_at, w.status,
	w.total_volume_kg::float8, w.average_rir::float8, w.synced, pd.day_name, pd.day_type`

const workoutFrom = `
	FROM workouts w
	LEFT JOIN program_days pd ON pd.id = w.program_day_id`

func scanWorkout(row pgx.Row) (*Workout, error) {
	var (
		w    Workout
		date time.Time
	)
	if err := row.Scan(
		&w.ID, &w.UserID, &w.ProgramDayID, &date, &w.StartedAt, &w.CompletedAt, &w.Status,
		&w.TotalVolumeKg, &w.AverageRIR, &w.Synced, &w.DayName, &w.DayType,
	); err != nil {
		return nil, err
	}
	w.Date = date.Format(DateLayout)
	return &w, nil
}

// Create adds a not started workout. A given program day must belong to one of the user's programs.
func (r *Repo) Create(ctx context.Context, userID int, programDayID *int, date time.Time) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("user.id", userID))

	var id int
	err = r.db.QueryRow(ctx, `
		INSERT INTO workouts (user_id, program_day_id, date, status)
		SELECT $1, $2, $3, 'not_started'
		WHERE $2::bigint IS NULL OR EXISTS (
			SELECT 1
			FROM program_days pd
			JOIN programs p ON p.id = pd.program_id
			WHERE pd.id = $2 AND p.user_id = $1
		)
		RETURNING id
	`, userID, programDayID, date).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramDayNotFound
		}
		return nil, err
	}

	return r.Get(ctx, userID, id)
}

func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	w, err := scanWorkout(r.db.QueryRow(ctx, `
		SELECT `+workoutColumns+workoutFrom+`
		WHERE w.id = $1 AND w.user_id = $2
	`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	return w, nil
}

// List returns the user's workouts, newest first, each with the exercises its program day prescribes.
func (r *Repo) List(ctx context.Context, userID int, params ListParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+workoutColumns+workoutFrom+`
		WHERE w.user_id = $1
			AND ($2::date IS NULL OR w.date >= $2)
			AND ($3::date IS NULL OR w.date <= $3)
		ORDER BY w.date DESC, w.id DESC
	`, userID, params.StartDate, params.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]Workout, 0)
	var dayIDs []int
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		if w.ProgramDayID != nil {
			dayIDs = append(dayIDs, *w.ProgramDayID)
		}
		workouts = append(workouts, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(dayIDs) == 0 {
		return workouts, nil
	}

	exercisesByDay, err := r.plannedExercises(ctx, dayIDs)
	if err != nil {
		return nil, fmt.Errorf("get planned exercises: %w", err)
	}
	for i := range workouts {
		if workouts[i].ProgramDayID != nil {
			workouts[i].Exercises = exercisesByDay[*workouts[i].ProgramDayID]
		}
	}

	return workouts, nil
}

func (r *Repo) plannedExercises(ctx context.Context, dayIDs []int) (map[int][]PlannedExercise, error) {
	rows, err := r.db.Query(ctx, `
		SELECT pe.id, pe.program_day_id, pe.exercise_id, e.name, pe.order_index, pe.sets, pe.reps, pe.rir
		FROM program_exercises pe
		JOIN exercises e ON e.id = pe.exercise_id
		WHERE pe.program_day_id = ANY($1)
		ORDER BY pe.program_day_id, pe.order_index
	`, dayIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byDay := make(map[int][]PlannedExercise)
	for rows.Next() {
		var pe PlannedExercise
		if err := rows.Scan(
			&pe.ID, &pe.ProgramDayID, &pe.ExerciseID, &pe.ExerciseName,
			&pe.OrderIndex, &pe.Sets, &pe.Reps, &pe.RIR,
		); err != nil {
			return nil, err
		}
		byDay[pe.ProgramDayID] = append(byDay[pe.ProgramDayID], pe)
	}

	return byDay, rows.Err()
}

// UpdateStatus applies the change to one of the user's workouts. Completing a workout
// stores the total volume (weight x reps) and the average RIR of its sets.
func (r *Repo) UpdateStatus(ctx context.Context, userID, id int, change StatusChange) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update_status")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.Int("workout.id", id),
		attribute.String("workout.status", string(change.Status)),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var locked int
	err = tx.QueryRow(ctx, `
		SELECT id FROM workouts WHERE id = $1 AND user_id = $2 FOR UPDATE
	`, id, userID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	var (
		totalVolume *float64
		averageRIR  *float64
	)
	if change.Complete {
		err = tx.QueryRow(ctx, `
			SELECT COALESCE(SUM(weight_kg * reps), 0)::float8, AVG(rir)::float8
			FROM sets
			WHERE workout_id = $1
		`, id).Scan(&totalVolume, &averageRIR)
		if err != nil {
			return nil, fmt.Errorf("sum workout volume: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE workouts SET
			status = $2,
			started_at = CASE WHEN $3 THEN COALESCE(started_at, $5) ELSE started_at END,
			completed_at = CASE WHEN $4 THEN $5 WHEN $6 THEN NULL ELSE completed_at END,
			total_volume_kg = CASE WHEN $4 THEN $7 ELSE total_volume_kg END,
			average_rir = CASE WHEN $4 THEN $8 ELSE average_rir END
		WHERE id = $1
	`, id, string(change.Status), change.StartNow, change.Complete, change.At,
		change.ClearCompleted, totalVolume, averageRIR)
	if err != nil {
		return nil, fmt.Errorf("update workout: %w", err)
	}

	w, err := scanWorkout(tx.QueryRow(ctx, `
		SELECT `+workoutColumns+workoutFrom+`
		WHERE w.id = $1
	`, id))
	if err != nil {
		return nil, err
	}

	return w, nil
}
