package bodyweight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=bodyweight_test

type bodyWeightRepo interface {
	Upsert(ctx context.Context, userID int, date time.Time, weightKg float64, notes *string) (*Entry, error)
	List(ctx context.Context, userID, limit int) ([]Entry, error)
	LatestOnOrBefore(ctx context.Context, userID int, day time.Time) (*Entry, error)
	Delete(ctx context.Context, userID, id int) error
}

type Service struct {
	repo bodyWeightRepo
	Now  func() time.Time
}

func NewService(repo bodyWeightRepo) *Service {
	return &Service{
		repo: repo,
		Now:  time.Now,
	}
}

func (s *Service) Log(ctx context.Context, userID int, params LogParams) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.bodyweight.log")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	date, err := params.Validate(s.Now())
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.Upsert(ctx, userID, date, params.WeightKg, params.Notes)
	if err != nil {
		return nil, fmt.Errorf("store body weight: %w", err)
	}

	log.Debugf("body weight logged: user=%d date=%s %.2fkg", userID, entry.Date, entry.WeightKg)
	return entry, nil
}

func (s *Service) List(ctx context.Context, userID, limit int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.bodyweight.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return s.repo.List(ctx, userID, ClampLimit(limit))
}

// Latest returns the newest entry with its change over the last 7 and 30 days.
// Changes stay nil when there is no entry old enough to compare with.
func (s *Service) Latest(ctx context.Context, userID int) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.bodyweight.latest")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	today := truncateDay(s.Now())
	latest, err := s.repo.LatestOnOrBefore(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("get latest body weight: %w", err)
	}

	summary := &Summary{Latest: latest}
	if latest == nil {
		return summary, nil
	}

	if summary.WeekChange, err = s.changeSince(ctx, userID, latest, today.AddDate(0, 0, -7)); err != nil {
		return nil, err
	}
	if summary.MonthChange, err = s.changeSince(ctx, userID, latest, today.AddDate(0, 0, -30)); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *Service) changeSince(ctx context.Context, userID int, latest *Entry, day time.Time) (*WeightChange, error) {
	previous, err := s.repo.LatestOnOrBefore(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("get body weight on %s: %w", day.Format(DateLayout), err)
	}
	if previous == nil {
		return nil, nil
	}
	return Change(latest.WeightKg, previous.WeightKg), nil
}

func (s *Service) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.bodyweight.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return apperr.NotFound("body weight entry", id)
		}
		return fmt.Errorf("delete body weight: %w", err)
	}
	return nil
}
