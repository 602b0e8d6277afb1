package recovery

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitflow/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrAssessmentNotFound = errors.New("recovery assessment not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const assessmentColumns = `id, user_id, date, sleep_quality, muscle_soreness, mental_motivation, total_score, volume_adjustment, timestamp`

func scanAssessment(row pgx.Row) (*Assessment, error) {
	var (
		a    Assessment
		date time.Time
	)
	if err := row.Scan(
		&a.ID, &a.UserID, &date,
		&a.SleepQuality, &a.MuscleSoreness, &a.MentalMotivation,
		&a.TotalScore, &a.VolumeAdjustment, &a.Timestamp,
	); err != nil {
		return nil, err
	}
	a.Date = date.Format(DateLayout)
	return &a, nil
}

// Upsert stores the assessment, replacing the one the user already has for that date.
func (r *Repo) Upsert(ctx context.Context, a *Assessment) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.upsert")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("user.id", a.UserID))

	day, err := time.Parse(DateLayout, a.Date)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO recovery_assessments (
			user_id, date, sleep_quality, muscle_soreness, mental_motivation,
			total_score, volume_adjustment, timestamp
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, date) DO UPDATE SET
			sleep_quality = EXCLUDED.sleep_quality,
			muscle_soreness = EXCLUDED.muscle_soreness,
			mental_motivation = EXCLUDED.mental_motivation,
			total_score = EXCLUDED.total_score,
			volume_adjustment = EXCLUDED.volume_adjustment,
			timestamp = EXCLUDED.timestamp
		RETURNING `+assessmentColumns,
		a.UserID, day,
		a.SleepQuality, a.MuscleSoreness, a.MentalMotivation,
		a.TotalScore, a.VolumeAdjustment, a.Timestamp,
	)

	return scanAssessment(row)
}

func (r *Repo) GetByDate(ctx context.Context, userID int, date string) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.get_by_date")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, err
	}

	a, err := scanAssessment(r.db.QueryRow(ctx, `
		SELECT `+assessmentColumns+`
		FROM recovery_assessments
		WHERE user_id = $1 AND date = $2
	`, userID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}

	return a, nil
}

// List returns the user's latest assessments, newest first.
func (r *Repo) List(ctx context.Context, userID, limit int) (_ []Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+assessmentColumns+`
		FROM recovery_assessments
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assessments := make([]Assessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, *a)
	}

	return assessments, rows.Err()
}
