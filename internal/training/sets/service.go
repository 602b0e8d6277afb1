package sets

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

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sets_test

type setsRepo interface {
	WorkoutOwner(ctx context.Context, workoutID int) (int, error)
	Insert(ctx context.Context, params LogParams) (*Set, bool, error)
	ListByWorkout(ctx context.Context, workoutID int) ([]Set, error)
	Delete(ctx context.Context, userID, setID int) error
}

type Service struct {
	repo           setsRepo
	metricsManager *metrics.Manager
	// injectable clock, for tests
	Now func() time.Time
}

func NewService(repo setsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		Now:            time.Now,
	}
}

func (s *Service) checkWorkoutOwner(ctx context.Context, userID, workoutID int) error {
	owner, err := s.repo.WorkoutOwner(ctx, workoutID)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			return apperr.NotFound("workout", workoutID)
		}
		return fmt.Errorf("get workout owner: %w", err)
	}
	if owner != userID {
		// someone else's workout looks the same as a missing one
		return apperr.NotFound("workout", workoutID)
	}
	return nil
}

// Log stores a set for one of the user's workouts. Retries carrying an already
// stored localId get the stored set back.
func (s *Service) Log(ctx context.Context, userID int, params LogParams) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sets.log")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkWorkoutOwner(ctx, userID, params.WorkoutID); err != nil {
		return nil, err
	}

	if params.Timestamp == nil {
		now := s.Now()
		params.Timestamp = &now
	}

	set, created, err := s.repo.Insert(ctx, params)
	if err != nil {
		if errors.Is(err, ErrInvalidRef) {
			return nil, apperr.Validation("exercise_id", "Invalid workout_id or exercise_id")
		}
		return nil, fmt.Errorf("insert set: %w", err)
	}

	if created {
		s.metricsManager.CounterSetsLogged.Inc()
		log.Debugf(
			"set logged: workout=%d exercise=%d %.1fkg x %d @ RIR %d (est. 1RM %.1fkg)",
			set.WorkoutID, set.ExerciseID, set.WeightKg, set.Reps, set.RIR, set.EstimatedOneRM,
		)
	} else {
		s.metricsManager.CounterDuplicateSets.Inc()
		log.Debugf("set %d already stored for workout %d, localId %s", set.ID, set.WorkoutID, *set.LocalID)
	}

	return set, nil
}

func (s *Service) ListForWorkout(ctx context.Context, userID, workoutID int) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sets.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := s.checkWorkoutOwner(ctx, userID, workoutID); err != nil {
		return nil, err
	}
	return s.repo.ListByWorkout(ctx, workoutID)
}

func (s *Service) Delete(ctx context.Context, userID, setID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sets.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := s.repo.Delete(ctx, userID, setID); err != nil {
		if errors.Is(err, ErrSetNotFound) {
			return apperr.NotFound("set", setID)
		}
		return fmt.Errorf("delete set: %w", err)
	}
	return nil
}
