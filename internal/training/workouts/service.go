package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/telemetry/metrics"
	"github.com/2beens/fitflow/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Create(ctx context.Context, userID int, programDayID *int, date time.Time) (*Workout, error)
	Get(ctx context.Context, userID, id int) (*Workout, error)
	List(ctx context.Context, userID int, params ListParams) ([]Workout, error)
	UpdateStatus(ctx context.Context, userID, id int, change StatusChange) (*Workout, error)
}

type Service struct {
	repo           workoutsRepo
	metricsManager *metrics.Manager
	Now            func() time.Time
}

func NewService(repo workoutsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		Now:            time.Now,
	}
}

func ParseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Validation(field, "Invalid %s. Expected YYYY-MM-DD", field)
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, userID int, params CreateParams) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	date, err := ParseDate("date", params.Date)
	if err != nil {
		return nil, err
	}
	if params.ProgramDayID != nil && *params.ProgramDayID <= 0 {
		return nil, apperr.Validation("program_day_id", "program_day_id must be positive")
	}

	w, err := s.repo.Create(ctx, userID, params.ProgramDayID, date)
	if err != nil {
		if errors.Is(err, ErrProgramDayNotFound) {
			return nil, apperr.NotFound("program day", *params.ProgramDayID)
		}
		return nil, fmt.Errorf("create workout: %w", err)
	}

	return w, nil
}

func (s *Service) Get(ctx context.Context, userID, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	w, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			return nil, apperr.NotFound("workout", id)
		}
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return w, nil
}

func (s *Service) List(ctx context.Context, userID int, startDate, endDate string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var params ListParams
	if startDate != "" {
		d, err := ParseDate("start_date", startDate)
		if err != nil {
			return nil, err
		}
		params.StartDate = &d
	}
	if endDate != "" {
		d, err := ParseDate("end_date", endDate)
		if err != nil {
			return nil, err
		}
		params.EndDate = &d
	}
	if params.StartDate != nil && params.EndDate != nil && params.EndDate.Before(*params.StartDate) {
		return nil, apperr.Validation("end_date", "end_date must not be before start_date")
	}

	return s.repo.List(ctx, userID, params)
}

func (s *Service) UpdateStatus(ctx context.Context, userID, id int, status Status) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.update_status")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if !status.Valid() {
		return nil, apperr.Validation("status", "Invalid status: %s. Valid options: %s", status, validStatusNames())
	}

	w, err := s.repo.UpdateStatus(ctx, userID, id, ChangeFor(status, s.Now()))
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			return nil, apperr.NotFound("workout", id)
		}
		return nil, fmt.Errorf("update workout status: %w", err)
	}

	s.metricsManager.CounterWorkoutStatusChanges.WithLabelValues(string(status)).Inc()
	if status == StatusCompleted && w.TotalVolumeKg != nil {
		log.Debugf("workout %d completed, volume %.1fkg", w.ID, *w.TotalVolumeKg)
	}

	return w, nil
}
