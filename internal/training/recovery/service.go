package recovery

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

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=recovery_test

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 365
)

type recoveryRepo interface {
	Upsert(ctx context.Context, a *Assessment) (*Assessment, error)
	GetByDate(ctx context.Context, userID int, date string) (*Assessment, error)
	List(ctx context.Context, userID, limit int) ([]Assessment, error)
}

type Service struct {
	repo           recoveryRepo
	metricsManager *metrics.Manager
	// injectable clock, for tests
	Now func() time.Time
}

func NewService(repo recoveryRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		Now:            time.Now,
	}
}

// Today is the current date in UTC, the day key of an assessment.
func (s *Service) Today() string {
	return s.Now().UTC().Format(DateLayout)
}

// Assess scores the check-in and stores it as the user's assessment for its date.
func (s *Service) Assess(ctx context.Context, userID int, checkIn CheckIn) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recovery.assess")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	result, err := Evaluate(checkIn)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Upsert(ctx, &Assessment{
		UserID:    userID,
		CheckIn:   checkIn,
		Result:    result,
		Timestamp: s.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("store assessment: %w", err)
	}

	s.metricsManager.CounterRecoveryAssessments.WithLabelValues(string(result.VolumeAdjustment)).Inc()
	log.Debugf(
		"recovery assessment: user=%d date=%s score=%d adjustment=%s",
		userID, checkIn.Date, result.TotalScore, result.VolumeAdjustment,
	)

	return stored, nil
}

// ForDate returns the assessment userID made on date. Users may only read their own.
func (s *Service) ForDate(ctx context.Context, callerID, userID int, date string) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recovery.for_date")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if callerID != userID {
		return nil, apperr.Forbidden("Forbidden: Cannot access other users data")
	}

	a, err := s.repo.GetByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, ErrAssessmentNotFound) {
			return nil, apperr.NotFound("recovery assessment", nil)
		}
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return a, nil
}

func (s *Service) History(ctx context.Context, userID, limit int) (_ []Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recovery.history")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return nil, apperr.Validation("limit", "Limit must be between 1 and %d", maxHistoryLimit)
	}

	return s.repo.List(ctx, userID, limit)
}
