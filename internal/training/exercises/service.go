package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/internal/training/sets"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=exercises_test

const (
	defaultCacheSizeMB = 10
	// the library only changes through the seed command
	listCacheExpireSeconds = 10 * 60
)

type exercisesRepo interface {
	List(ctx context.Context, filter Filter) ([]Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	Upsert(ctx context.Context, e *Exercise) (*Exercise, error)
	LastPerformance(ctx context.Context, userID, exerciseID int) (*LastPerformance, error)
}

type Service struct {
	repo  exercisesRepo
	cache *freecache.Cache
}

// NewService builds the library service with a list cache of cacheSizeMB megabytes,
// 10 when not positive.
func NewService(repo exercisesRepo, cacheSizeMB int) *Service {
	if cacheSizeMB <= 0 {
		cacheSizeMB = defaultCacheSizeMB
	}
	return &Service{
		repo:  repo,
		cache: freecache.NewCache(cacheSizeMB * 1024 * 1024),
	}
}

func (s *Service) List(ctx context.Context, filter Filter) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	cacheKey := []byte(filter.cacheKey())
	if cached, err := s.cache.Get(cacheKey); err == nil {
		var exercises []Exercise
		if err := json.Unmarshal(cached, &exercises); err == nil {
			log.Tracef("exercises list %s served from cache", cacheKey)
			return exercises, nil
		} else {
			log.Errorf("failed to unmarshal cached exercises %s: %s", cacheKey, err)
		}
	}

	exercises, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	if listBytes, err := json.Marshal(exercises); err != nil {
		log.Errorf("failed to marshal exercises for cache: %s", err)
	} else if err := s.cache.Set(cacheKey, listBytes, listCacheExpireSeconds); err != nil {
		log.Errorf("failed to cache exercises list %s: %s", cacheKey, err)
	}

	return exercises, nil
}

func (s *Service) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	e, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			return nil, apperr.NotFound("exercise", id)
		}
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return e, nil
}

// Save validates and stores a library exercise. Cached listings are dropped.
func (s *Service) Save(ctx context.Context, e *Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.save")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.repo.Upsert(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("upsert exercise %s: %w", e.Name, err)
	}
	s.cache.Clear()

	return stored, nil
}

// LastPerformance returns the user's latest completed sets of the exercise with the best 1RM estimate among them.
func (s *Service) LastPerformance(ctx context.Context, userID, exerciseID int) (_ *LastPerformance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.last_performance")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	perf, err := s.repo.LastPerformance(ctx, userID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("get last performance: %w", err)
	}
	if perf == nil || len(perf.Sets) == 0 {
		return nil, apperr.NotFound("performance history for exercise", exerciseID)
	}

	for _, set := range perf.Sets {
		est, err := sets.EstimateOneRepMax(set.WeightKg, set.Reps, set.RIR)
		if err != nil {
			log.Warnf("skipping stored set of exercise %d in 1RM estimate: %s", exerciseID, err)
			continue
		}
		if est > perf.EstimatedOneRM {
			perf.EstimatedOneRM = est
		}
	}

	return perf, nil
}
