package cardio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=cardio_test

type sessionsRepo interface {
	UserAge(ctx context.Context, userID int) (*int, error)
	Create(ctx context.Context, userID int, date time.Time, params CreateParams, status CompletionStatus) (int, error)
	Get(ctx context.Context, userID, id int) (*Session, error)
	List(ctx context.Context, userID int, params ListParams) ([]Session, int, error)
	Progression(ctx context.Context, userID int, from, to *time.Time) ([]ProgressionPoint, error)
	Update(ctx context.Context, userID, id int, u SessionUpdate) (*Session, error)
}

type Service struct {
	repo sessionsRepo
}

func NewService(repo sessionsRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) Create(ctx context.Context, userID int, params CreateParams) (_ *CreateResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.cardio.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	date, err := params.Validate()
	if err != nil {
		return nil, err
	}
	if msg := UnusualDuration(params.ProtocolType, params.DurationMinutes); msg != "" {
		log.Warnf("vo2max session: user=%d unusual duration %d min: %s", userID, params.DurationMinutes, msg)
	}

	if params.EstimatedVO2max == nil && params.AverageHeartRate != nil {
		age, err := s.repo.UserAge(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("get user age: %w", err)
		}
		if age != nil {
			estimate := EstimateVO2max(*age)
			params.EstimatedVO2max = &estimate
		} else {
			log.Warnf("vo2max session: user=%d has no age set, skipping estimate", userID)
		}
	}

	status := Completion(params.ProtocolType, params.DurationMinutes, params.IntervalsCompleted)
	id, err := s.repo.Create(ctx, userID, date, params, status)
	if err != nil {
		switch {
		case errors.Is(err, ErrWorkoutNotFound):
			return nil, apperr.NotFound("workout", *params.WorkoutID)
		case errors.Is(err, ErrNoVO2maxDay):
			return nil, apperr.Validation("workout_id", "No VO2max program day found. Please create a program with VO2max days first.")
		}
		return nil, fmt.Errorf("store vo2max session: %w", err)
	}

	log.Debugf("vo2max session %d logged: user=%d protocol=%s status=%s", id, userID, params.ProtocolType, status)
	return &CreateResult{
		SessionID:        id,
		EstimatedVO2max:  params.EstimatedVO2max,
		CompletionStatus: status,
	}, nil
}

func (s *Service) Get(ctx context.Context, userID, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.cardio.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperr.NotFound("VO2max session", id)
		}
		return nil, fmt.Errorf("get vo2max session: %w", err)
	}
	return session, nil
}

func (s *Service) List(ctx context.Context, userID int, query ListQuery) (_ *ListResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.cardio.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	params, err := query.Params()
	if err != nil {
		return nil, err
	}

	sessions, total, err := s.repo.List(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("list vo2max sessions: %w", err)
	}

	return &ListResult{
		Sessions: sessions,
		Count:    len(sessions),
		HasMore:  params.Offset+len(sessions) < total,
	}, nil
}

func (s *Service) Progression(ctx context.Context, userID int, startDate, endDate string) (_ []ProgressionPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.cardio.progression")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	from, to, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.repo.Progression(ctx, userID, from, to)
}

// Update changes a session. The protocol of the stored session decides which
// fields are allowed.
func (s *Service) Update(ctx context.Context, userID, id int, u SessionUpdate) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.cardio.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if u.Empty() {
		return nil, apperr.Validation("body", "No fields to update")
	}

	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := u.Validate(current.ProtocolType); err != nil {
		return nil, err
	}

	session, err := s.repo.Update(ctx, userID, id, u)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperr.NotFound("VO2max session", id)
		}
		return nil, fmt.Errorf("update vo2max session: %w", err)
	}
	return session, nil
}
