package programs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrProgramNotFound         = errors.New("program not found")
	ErrProgramDayNotFound      = errors.New("program day not found")
	ErrProgramExerciseNotFound = errors.New("program exercise not found")
	ErrInvalidExercise         = errors.New("invalid exercise reference")
	ErrExerciseNotFound        = errors.New("exercise not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// querier is what both the pool and a transaction can run queries with.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func withTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
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
	return fn(tx)
}

func insertDay(ctx context.Context, tx pgx.Tx, programID, dayOfWeek int, name string, dayType DayType) (int, error) {
	var id int
	err := tx.QueryRow(ctx, `
		INSERT INTO program_days (program_id, day_of_week, day_name, day_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, programID, dayOfWeek, name, string(dayType)).Scan(&id)
	return id, err
}

func insertExercise(ctx context.Context, tx pgx.Tx, dayID, orderIndex int, e ExerciseParams) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO program_exercises (program_day_id, exercise_id, order_index, sets, reps, rir)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, dayID, e.ExerciseID, orderIndex, e.Sets, e.Reps, e.RIR)
	if pkg.IsForeignKeyViolationError(err) {
		return ErrInvalidExercise
	}
	return err
}

// Create stores the program with all its days and exercises at once.
func (r *Repo) Create(ctx context.Context, userID int, params CreateParams) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("user.id", userID))

	phase := PhaseMEV
	if params.MesocyclePhase != nil {
		phase = *params.MesocyclePhase
	}

	var programID int
	err = withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO programs (user_id, name, mesocycle_week, mesocycle_phase)
			VALUES ($1, $2, 1, $3)
			RETURNING id
		`, userID, params.Name, string(phase)).Scan(&programID); err != nil {
			return err
		}

		for _, d := range params.Days {
			dayID, err := insertDay(ctx, tx, programID, d.DayOfWeek, d.DayName, d.DayType)
			if err != nil {
				return fmt.Errorf("insert program day: %w", err)
			}
			for i, e := range d.Exercises {
				if err := insertExercise(ctx, tx, dayID, i+1, e); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.get(ctx, r.db, `WHERE p.id = $1 AND p.user_id = $2`, programID, userID)
}

// CreateDefault gives a new user the default split and a workout for today's session.
// Template exercises missing from the library are left out.
func (r *Repo) CreateDefault(ctx context.Context, userID int, today time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.create_default")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("user.id", userID))

	var programID int
	err = withTx(ctx, r.db, func(tx pgx.Tx) error {
		exerciseIDs, err := exerciseIDsByName(ctx, tx, templateExerciseNames())
		if err != nil {
			return fmt.Errorf("resolve template exercises: %w", err)
		}

		if err := tx.QueryRow(ctx, `
			INSERT INTO programs (user_id, name, mesocycle_week, mesocycle_phase)
			VALUES ($1, $2, 1, 'mev')
			RETURNING id
		`, userID, DefaultProgramName).Scan(&programID); err != nil {
			return err
		}

		dayIDs := make([]int, len(defaultTemplate))
		for i, d := range defaultTemplate {
			dayIDs[i], err = insertDay(ctx, tx, programID, d.dayOfWeek, d.name, d.dayType)
			if err != nil {
				return fmt.Errorf("insert program day: %w", err)
			}
			order := 0
			for _, e := range d.exercises {
				exerciseID, ok := exerciseIDs[e.name]
				if !ok {
					log.Warnf("default program: exercise [%s] not in the library, skipping", e.name)
					continue
				}
				order++
				if err := insertExercise(ctx, tx, dayIDs[i], order, ExerciseParams{
					ExerciseID: exerciseID, Sets: e.sets, Reps: e.reps, RIR: e.rir,
				}); err != nil {
					return err
				}
			}
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO workouts (user_id, program_day_id, date, status)
			VALUES ($1, $2, $3, 'not_started')
		`, userID, dayIDs[templateDayIndexFor(today)], today)
		return err
	})
	if err != nil {
		return 0, err
	}

	return programID, nil
}

func exerciseIDsByName(ctx context.Context, q querier, names []string) (map[string]int, error) {
	rows, err := q.Query(ctx, `SELECT name, id FROM exercises WHERE name = ANY($1)`, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]int)
	for rows.Next() {
		var (
			name string
			id   int
		)
		if err := rows.Scan(&name, &id); err != nil {
			return nil, err
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

// Latest returns the user's most recently created program with its days and exercises.
func (r *Repo) Latest(ctx context.Context, userID int) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.latest")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.get(ctx, r.db, `WHERE p.user_id = $1 ORDER BY p.created_at DESC, p.id DESC LIMIT 1`, userID)
}

func (r *Repo) get(ctx context.Context, q querier, where string, args ...any) (*Program, error) {
	var p Program
	err := q.QueryRow(ctx, `
		SELECT p.id, p.user_id, p.name, p.mesocycle_week, p.mesocycle_phase, p.created_at
		FROM programs p
		`+where, args...).
		Scan(&p.ID, &p.UserID, &p.Name, &p.MesocycleWeek, &p.MesocyclePhase, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	days, err := r.days(ctx, q, p.ID)
	if err != nil {
		return nil, fmt.Errorf("get program days: %w", err)
	}
	p.Days = days

	return &p, nil
}

func (r *Repo) days(ctx context.Context, q querier, programID int) ([]Day, error) {
	rows, err := q.Query(ctx, `
		SELECT id, program_id, day_of_week, day_name, day_type
		FROM program_days
		WHERE program_id = $1
		ORDER BY day_of_week, id
	`, programID)
	if err != nil {
		return nil, err
	}

	days := make([]Day, 0)
	dayIndex := make(map[int]int)
	for rows.Next() {
		var d Day
		if err := rows.Scan(&d.ID, &d.ProgramID, &d.DayOfWeek, &d.DayName, &d.DayType); err != nil {
			rows.Close()
			return nil, err
		}
		d.Exercises = make([]ProgramExercise, 0)
		dayIndex[d.ID] = len(days)
		days = append(days, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exercises, err := r.exercises(ctx, q, `WHERE pd.program_id = $1 ORDER BY pe.program_day_id, pe.order_index`, programID)
	if err != nil {
		return nil, err
	}
	for _, e := range exercises {
		i := dayIndex[e.ProgramDayID]
		days[i].Exercises = append(days[i].Exercises, e)
	}

	return days, nil
}

func (r *Repo) exercises(ctx context.Context, q querier, where string, args ...any) ([]ProgramExercise, error) {
	rows, err := q.Query(ctx, `
		SELECT pe.id, pe.program_day_id, pe.exercise_id, e.name, e.muscle_groups,
			pe.order_index, pe.sets, pe.reps, pe.rir
		FROM program_exercises pe
		JOIN program_days pd ON pd.id = pe.program_day_id
		JOIN exercises e ON e.id = pe.exercise_id
		`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]ProgramExercise, 0)
	for rows.Next() {
		var pe ProgramExercise
		if err := rows.Scan(
			&pe.ID, &pe.ProgramDayID, &pe.ExerciseID, &pe.ExerciseName, &pe.MuscleGroups,
			&pe.OrderIndex, &pe.Sets, &pe.Reps, &pe.RIR,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, pe)
	}
	return exercises, rows.Err()
}

// AdvancePhase moves one of the user's programs to the next mesocycle phase and scales
// the prescribed sets by the phase volume multiplier.
func (r *Repo) AdvancePhase(ctx context.Context, userID, programID int, target *Phase) (_ *PhaseAdvance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.advance_phase")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("program.id", programID))

	result := &PhaseAdvance{ProgramID: programID}
	err = withTx(ctx, r.db, func(tx pgx.Tx) error {
		var week int
		err := tx.QueryRow(ctx, `
			SELECT mesocycle_phase, mesocycle_week
			FROM programs
			WHERE id = $1 AND user_id = $2
			FOR UPDATE
		`, programID, userID).Scan(&result.PreviousPhase, &week)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrProgramNotFound
			}
			return err
		}

		result.NewPhase, result.MesocycleWeek, result.VolumeMultiplier = Advance(result.PreviousPhase, week, target)

		tag, err := tx.Exec(ctx, `
			UPDATE program_exercises
			SET sets = LEAST($3::int, GREATEST($2::int, FLOOR(sets * $4::float8 + 0.5)::int))
			WHERE program_day_id IN (SELECT id FROM program_days WHERE program_id = $1)
		`, programID, MinExerciseSets, MaxExerciseSets, result.VolumeMultiplier)
		if err != nil {
			return fmt.Errorf("scale program sets: %w", err)
		}
		result.ExercisesUpdated = int(tag.RowsAffected())

		_, err = tx.Exec(ctx, `
			UPDATE programs SET mesocycle_phase = $2, mesocycle_week = $3 WHERE id = $1
		`, programID, string(result.NewPhase), result.MesocycleWeek)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AddExercise appends an exercise to a day of one of the user's programs.
func (r *Repo) AddExercise(ctx context.Context, userID, dayID int, params ExerciseParams) (_ *ProgramExercise, programID int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.add_exercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var id int
	err = r.db.QueryRow(ctx, `
		INSERT INTO program_exercises (program_day_id, exercise_id, order_index, sets, reps, rir)
		SELECT pd.id, $3, COALESCE((SELECT MAX(order_index) FROM program_exercises WHERE program_day_id = pd.id), 0) + 1, $4, $5, $6
		FROM program_days pd
		JOIN programs p ON p.id = pd.program_id
		WHERE pd.id = $1 AND p.user_id = $2
		RETURNING id
	`, dayID, userID, params.ExerciseID, params.Sets, params.Reps, params.RIR).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrProgramDayNotFound
		}
		if pkg.IsForeignKeyViolationError(err) {
			return nil, 0, ErrInvalidExercise
		}
		return nil, 0, err
	}

	return r.programExercise(ctx, id)
}

// UpdateExercise changes the prescription of one of the user's program exercises.
func (r *Repo) UpdateExercise(ctx context.Context, userID, id int, update ExerciseUpdate) (_ *ProgramExercise, programID int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.update_exercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `
		UPDATE program_exercises pe SET
			sets = COALESCE($3, pe.sets),
			reps = COALESCE($4, pe.reps),
			rir = COALESCE($5, pe.rir)
		FROM program_days pd, programs p
		WHERE pe.id = $1 AND pd.id = pe.program_day_id AND p.id = pd.program_id AND p.user_id = $2
	`, id, userID, update.Sets, update.Reps, update.RIR)
	if err != nil {
		return nil, 0, err
	}
	if tag.RowsAffected() == 0 {
		return nil, 0, ErrProgramExerciseNotFound
	}

	return r.programExercise(ctx, id)
}

func (r *Repo) programExercise(ctx context.Context, id int) (*ProgramExercise, int, error) {
	var programID int
	if err := r.db.QueryRow(ctx, `
		SELECT pd.program_id
		FROM program_exercises pe
		JOIN program_days pd ON pd.id = pe.program_day_id
		WHERE pe.id = $1
	`, id).Scan(&programID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrProgramExerciseNotFound
		}
		return nil, 0, err
	}

	list, err := r.exercises(ctx, r.db, `WHERE pe.id = $1`, id)
	if err != nil {
		return nil, 0, err
	}
	if len(list) == 0 {
		return nil, 0, ErrProgramExerciseNotFound
	}
	return &list[0], programID, nil
}

// DeleteExercise removes one of the user's program exercises and returns the muscle
// groups it trained.
func (r *Repo) DeleteExercise(ctx context.Context, userID, id int) (programID int, muscleGroups []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.delete_exercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `
		DELETE FROM program_exercises pe
		USING program_days pd, programs p, exercises e
		WHERE pe.id = $1
			AND pd.id = pe.program_day_id
			AND p.id = pd.program_id
			AND e.id = pe.exercise_id
			AND p.user_id = $2
		RETURNING pd.program_id, e.muscle_groups
	`, id, userID).Scan(&programID, &muscleGroups)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, ErrProgramExerciseNotFound
		}
		return 0, nil, err
	}

	return programID, muscleGroups, nil
}

// SwapExercise replaces the exercise of one of the user's program exercises with one that
// trains at least one of the same muscle groups.
func (r *Repo) SwapExercise(ctx context.Context, userID, id, newExerciseID int) (_ *Swap, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.swap_exercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("program_exercise.id", id), attribute.Int("exercise.id", newExerciseID))

	swap := &Swap{}
	err = withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT pd.program_id
			FROM program_exercises pe
			JOIN program_days pd ON pd.id = pe.program_day_id
			JOIN programs p ON p.id = pd.program_id
			WHERE pe.id = $1 AND p.user_id = $2
			FOR UPDATE OF pe
		`, id, userID).Scan(&swap.ProgramID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrProgramExerciseNotFound
			}
			return err
		}

		current, err := r.exercises(ctx, tx, `WHERE pe.id = $1`, id)
		if err != nil {
			return err
		}
		if len(current) == 0 {
			return ErrProgramExerciseNotFound
		}
		swap.Before = current[0]

		var (
			newName   string
			newGroups []string
		)
		err = tx.QueryRow(ctx, `SELECT name, muscle_groups FROM exercises WHERE id = $1`, newExerciseID).
			Scan(&newName, &newGroups)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrExerciseNotFound
			}
			return err
		}

		if !SharesMuscleGroup(swap.Before.MuscleGroups, newGroups) {
			return &IncompatibleExerciseError{
				Current:           swap.Before.ExerciseName,
				Replacement:       newName,
				CurrentGroups:     swap.Before.MuscleGroups,
				ReplacementGroups: newGroups,
			}
		}

		_, err = tx.Exec(ctx, `UPDATE program_exercises SET exercise_id = $2 WHERE id = $1`, id, newExerciseID)
		if err != nil {
			return err
		}

		swap.After = swap.Before
		swap.After.ExerciseID = newExerciseID
		swap.After.ExerciseName = newName
		swap.After.MuscleGroups = newGroups
		return nil
	})
	if err != nil {
		return nil, err
	}

	return swap, nil
}

// ReorderExercises sets the order of exercises within one of the user's program days.
// Either every listed exercise is moved or none is.
func (r *Repo) ReorderExercises(ctx context.Context, userID, dayID int, items []ReorderItem) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.reorder_exercises")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("program_day.id", dayID), attribute.Int("items", len(items)))

	ids := make([]int, 0, len(items))
	indexes := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProgramExerciseID)
		indexes = append(indexes, *item.NewOrderIndex)
	}

	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		var owned bool
		err := tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1
				FROM program_days pd
				JOIN programs p ON p.id = pd.program_id
				WHERE pd.id = $1 AND p.user_id = $2
			)
		`, dayID, userID).Scan(&owned)
		if err != nil {
			return err
		}
		if !owned {
			return ErrProgramDayNotFound
		}

		tag, err := tx.Exec(ctx, `
			UPDATE program_exercises pe
			SET order_index = o.order_index
			FROM unnest($2::bigint[], $3::int[]) AS o(id, order_index)
			WHERE pe.id = o.id AND pe.program_day_id = $1
		`, dayID, ids, indexes)
		if err != nil {
			return err
		}
		if int(tag.RowsAffected()) != len(items) {
			return ErrProgramExerciseNotFound
		}
		return nil
	})
}

// PlannedSets sums the weekly prescribed sets of a program per muscle group. Every group an
// exercise lists counts the full sets.
func (r *Repo) PlannedSets(ctx context.Context, programID int) (_ map[string]int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.planned_sets")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT g.muscle_group, SUM(pe.sets)::int
		FROM program_exercises pe
		JOIN program_days pd ON pd.id = pe.program_day_id
		JOIN exercises e ON e.id = pe.exercise_id
		CROSS JOIN LATERAL jsonb_array_elements_text(e.muscle_groups) AS g(muscle_group)
		WHERE pd.program_id = $1
		GROUP BY g.muscle_group
	`, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	planned := make(map[string]int)
	for rows.Next() {
		var (
			group string
			sets  int
		)
		if err := rows.Scan(&group, &sets); err != nil {
			return nil, err
		}
		planned[group] = sets
	}
	return planned, rows.Err()
}

// PlannedVolume is the weekly plan of the user's latest program.
type PlannedVolume struct {
	ProgramID      int
	MesocyclePhase Phase
	Sets           map[string]int
}

func (r *Repo) LatestPlannedVolume(ctx context.Context, userID int) (_ *PlannedVolume, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.latest_planned_volume")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	pv := &PlannedVolume{}
	err = r.db.QueryRow(ctx, `
		SELECT id, mesocycle_phase
		FROM programs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, userID).Scan(&pv.ProgramID, &pv.MesocyclePhase)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	pv.Sets, err = r.PlannedSets(ctx, pv.ProgramID)
	if err != nil {
		return nil, err
	}
	return pv, nil
}
