package cardio

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/internal/training/workouts"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrSessionNotFound = errors.New("vo2max session not found")
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrNoVO2maxDay     = errors.New("no vo2max program day")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const sessionColumns = `s.id, w.user_id, s.workout_id, w.date, s.duration_seconds, s.protocol,
	s.average_heart_rate, s.peak_heart_rate, s.estimated_vo2max::float8, s.intervals_completed,
	s.rpe, s.completion_status, s.notes, s.created_at`

func scanSession(row pgx.Row) (*Session, error) {
	var (
		s               Session
		date            time.Time
		durationSeconds int
		protocol        string
		status          string
	)
	if err := row.Scan(
		&s.ID, &s.UserID, &s.WorkoutID, &date, &durationSeconds, &protocol,
		&s.AverageHeartRate, &s.PeakHeartRate, &s.EstimatedVO2max, &s.IntervalsCompleted,
		&s.RPE, &status, &s.Notes, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	s.Date = date.Format(workouts.DateLayout)
	s.DurationMinutes = durationSeconds / 60
	s.ProtocolType = protocolFromColumn(protocol)
	s.CompletionStatus = CompletionStatus(status)
	return &s, nil
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

// UserAge returns nil when the user never set an age.
func (r *Repo) UserAge(ctx context.Context, userID int) (_ *int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.cardio.user_age")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var age *int
	if err := r.db.QueryRow(ctx, `SELECT age FROM users WHERE id = $1`, userID).Scan(&age); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return age, nil
}

// Create stores a session. Without a workout id, a completed workout is created
// on the given date for the user's newest vo2max program day.
func (r *Repo) Create(ctx context.Context, userID int, date time.Time, params CreateParams, status CompletionStatus) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.cardio.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.String("protocol", string(params.ProtocolType)))

	var id int
	err = withTx(ctx, r.db, func(tx pgx.Tx) error {
		var workoutID int
		if params.WorkoutID != nil {
			err := tx.QueryRow(ctx, `SELECT id FROM workouts WHERE id = $1 AND user_id = $2`, *params.WorkoutID, userID).Scan(&workoutID)
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrWorkoutNotFound
			}
			if err != nil {
				return err
			}
		} else {
			var dayID int
			err := tx.QueryRow(ctx, `
				SELECT pd.id
				FROM program_days pd
				JOIN programs p ON p.id = pd.program_id
				WHERE p.user_id = $1 AND pd.day_type = 'vo2max'
				ORDER BY p.created_at DESC, p.id DESC, pd.day_of_week
				LIMIT 1
			`, userID).Scan(&dayID)
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNoVO2maxDay
			}
			if err != nil {
				return err
			}

			if err := tx.QueryRow(ctx, `
				INSERT INTO workouts (user_id, program_day_id, date, started_at, completed_at, status, synced)
				VALUES ($1, $2, $3, now(), now(), $4, TRUE)
				RETURNING id
			`, userID, dayID, date, string(workouts.StatusCompleted)).Scan(&workoutID); err != nil {
				return err
			}
		}

		return tx.QueryRow(ctx, `
			INSERT INTO vo2max_sessions (
				workout_id, protocol, duration_seconds, intervals_completed, average_heart_rate,
				peak_heart_rate, estimated_vo2max, rpe, notes, completion_status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`, workoutID, params.ProtocolType.column(), params.DurationMinutes*60, params.IntervalsCompleted,
			params.AverageHeartRate, params.PeakHeartRate, params.EstimatedVO2max, params.RPE, params.Notes,
			string(status),
		).Scan(&id)
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.cardio.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	s, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM vo2max_sessions s
		JOIN workouts w ON w.id = s.workout_id
		WHERE s.id = $1 AND w.user_id = $2
	`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return s, nil
}

// List returns one page of sessions, newest first, and the total number of
// sessions matching the filter.
func (r *Repo) List(ctx context.Context, userID int, params ListParams) (_ []Session, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.cardio.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	where := []string{"w.user_id = $1"}
	args := []any{userID}
	if params.StartDate != nil {
		args = append(args, *params.StartDate)
		where = append(where, "w.date >= $"+strconv.Itoa(len(args)))
	}
	if params.EndDate != nil {
		args = append(args, *params.EndDate)
		where = append(where, "w.date <= $"+strconv.Itoa(len(args)))
	}
	if params.Protocol != nil {
		args = append(args, params.Protocol.column())
		where = append(where, "s.protocol = $"+strconv.Itoa(len(args)))
	}
	from := `
		FROM vo2max_sessions s
		JOIN workouts w ON w.id = s.workout_id
		WHERE ` + strings.Join(where, " AND ")

	if err := r.db.QueryRow(ctx, `SELECT count(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset)
	rows, err := r.db.Query(ctx, `
		SELECT `+sessionColumns+from+`
		ORDER BY w.date DESC, s.created_at DESC
		LIMIT $`+strconv.Itoa(len(args)-1)+` OFFSET $`+strconv.Itoa(len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, *s)
	}

	return sessions, total, rows.Err()
}

// Progression returns sessions with a VO2max estimate in the range, oldest first.
func (r *Repo) Progression(ctx context.Context, userID int, from, to *time.Time) (_ []ProgressionPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.cardio.progression")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT w.date, s.estimated_vo2max::float8, s.protocol
		FROM vo2max_sessions s
		JOIN workouts w ON w.id = s.workout_id
		WHERE w.user_id = $1
			AND s.estimated_vo2max IS NOT NULL
			AND ($2::date IS NULL OR w.date >= $2)
			AND ($3::date IS NULL OR w.date <= $3)
		ORDER BY w.date ASC, s.created_at ASC
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]ProgressionPoint, 0)
	for rows.Next() {
		var (
			p        ProgressionPoint
			date     time.Time
			protocol string
		)
		if err := rows.Scan(&date, &p.EstimatedVO2max, &protocol); err != nil {
			return nil, err
		}
		p.Date = date.Format(workouts.DateLayout)
		p.ProtocolType = protocolFromColumn(protocol)
		points = append(points, p)
	}

	return points, rows.Err()
}

// Update applies the non-nil fields of the update to a session the user owns.
func (r *Repo) Update(ctx context.Context, userID, id int, u SessionUpdate) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.cardio.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var durationSeconds *int
	if u.DurationMinutes != nil {
		d := *u.DurationMinutes * 60
		durationSeconds = &d
	}
	var status *string
	if u.CompletionStatus != nil {
		s := string(*u.CompletionStatus)
		status = &s
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE vo2max_sessions s
		SET duration_seconds = COALESCE($3, s.duration_seconds),
			average_heart_rate = COALESCE($4, s.average_heart_rate),
			peak_heart_rate = COALESCE($5, s.peak_heart_rate),
			estimated_vo2max = COALESCE($6, s.estimated_vo2max),
			intervals_completed = COALESCE($7, s.intervals_completed),
			rpe = COALESCE($8, s.rpe),
			notes = COALESCE($9, s.notes),
			completion_status = COALESCE($10, s.completion_status)
		FROM workouts w
		WHERE s.id = $1 AND w.id = s.workout_id AND w.user_id = $2
	`, id, userID, durationSeconds, u.AverageHeartRate, u.PeakHeartRate, u.EstimatedVO2max,
		u.IntervalsCompleted, u.RPE, u.Notes, status)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrSessionNotFound
	}

	return r.Get(ctx, userID, id)
}
