package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/telemetry/metrics"
	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/internal/training/programs"
	"github.com/2beens/fitflow/internal/training/volume"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=analytics_test

type analyticsRepo interface {
	SetCounts(ctx context.Context, userID int, from, to time.Time) ([]volume.SetCount, error)
	WorkoutSpans(ctx context.Context, userID int) ([]WorkoutSpan, error)
	LoggedSets(ctx context.Context, userID, exerciseID int, from, to time.Time) ([]LoggedSet, error)
}

type plannedVolumeSource interface {
	LatestPlannedVolume(ctx context.Context, userID int) (*programs.PlannedVolume, error)
}

// Analyzer reads the user's training rows and summarizes them with the volume
// and consistency calculators.
type Analyzer struct {
	repo           analyticsRepo
	planned        plannedVolumeSource
	metricsManager *metrics.Manager
	Now            func() time.Time
}

func NewAnalyzer(repo analyticsRepo, planned plannedVolumeSource, metricsManager *metrics.Manager) *Analyzer {
	return &Analyzer{
		repo:           repo,
		planned:        planned,
		metricsManager: metricsManager,
		Now:            time.Now,
	}
}

func (a *Analyzer) observe(report string, start time.Time) {
	a.metricsManager.HistogramAnalyticsDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}

func parseRange(startDate, endDate string) (from, to time.Time, err error) {
	if from, err = time.Parse(volume.DateLayout, startDate); err != nil {
		return from, to, apperr.Validation("start_date", "Invalid start_date. Expected YYYY-MM-DD")
	}
	if to, err = time.Parse(volume.DateLayout, endDate); err != nil {
		return from, to, apperr.Validation("end_date", "Invalid end_date. Expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return from, to, apperr.Validation("end_date", "end_date must not be before start_date")
	}
	return from, to, nil
}

// OneRMProgression returns the best estimated 1RM per workout date for an exercise.
func (a *Analyzer) OneRMProgression(ctx context.Context, userID, exerciseID int, startDate, endDate string) (_ []OneRMPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.1rm_progression")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	defer a.observe("1rm_progression", time.Now())
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	if exerciseID <= 0 {
		return nil, apperr.Validation("exercise_id", "Invalid exercise_id")
	}
	from, to, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	logged, err := a.repo.LoggedSets(ctx, userID, exerciseID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get logged sets: %w", err)
	}
	return Progression(logged), nil
}

// VolumeTrends returns the weekly volume of the last weeks, the current one included.
func (a *Analyzer) VolumeTrends(ctx context.Context, userID, weeks int, muscleGroup string) (_ *VolumeTrends, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.volume_trends")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	defer a.observe("volume_trends", time.Now())

	if weeks < 1 {
		return nil, apperr.Validation("weeks", "Invalid weeks parameter. Must be a positive number.")
	}
	if weeks > MaxTrendWeeks {
		return nil, apperr.Validation("weeks", "Weeks parameter exceeds maximum of %d", MaxTrendWeeks)
	}
	if muscleGroup != "" {
		if err := volume.ValidateMuscleGroup(muscleGroup); err != nil {
			return nil, err
		}
	}

	from, to := volume.LastWeeks(a.Now().UTC(), weeks)
	counts, err := a.repo.SetCounts(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get set counts: %w", err)
	}

	return &VolumeTrends{Weeks: volume.Weekly(counts, from, to, muscleGroup)}, nil
}

// VolumeByWeek returns one row per ISO week of the range for a single muscle group.
func (a *Analyzer) VolumeByWeek(ctx context.Context, userID int, muscleGroup, startDate, endDate string) (_ []volume.WeekTotal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.volume_by_week")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	defer a.observe("volume_by_week", time.Now())

	if err := volume.ValidateMuscleGroup(muscleGroup); err != nil {
		return nil, err
	}
	from, to, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	counts, err := a.repo.SetCounts(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get set counts: %w", err)
	}
	return volume.WeeklyTotals(counts, from, to, muscleGroup), nil
}

// CurrentWeek compares this week's completed sets with the sets the latest program plans.
// Without a program nothing is planned.
func (a *Analyzer) CurrentWeek(ctx context.Context, userID int) (_ *volume.CurrentWeek, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.current_week")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	defer a.observe("current_week", time.Now())

	now := a.Now().UTC()
	monday, sunday := volume.WeekBounds(now)
	counts, err := a.repo.SetCounts(ctx, userID, monday, sunday)
	if err != nil {
		return nil, fmt.Errorf("get set counts: %w", err)
	}
	completed := make(map[string]int)
	for _, c := range counts {
		completed[c.MuscleGroup] += c.Sets
	}

	planned := map[string]int{}
	pv, err := a.planned.LatestPlannedVolume(ctx, userID)
	switch {
	case err == nil:
		planned = pv.Sets
	case errors.Is(err, programs.ErrProgramNotFound):
	default:
		return nil, fmt.Errorf("get planned volume: %w", err)
	}

	progress := volume.Progress(now, completed, planned)
	return &progress, nil
}

// ProgramAnalysis classifies the weekly sets planned by the user's latest program.
func (a *Analyzer) ProgramAnalysis(ctx context.Context, userID int) (_ *ProgramAnalysis, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.program_analysis")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	defer a.observe("program_analysis", time.Now())

	pv, err := a.planned.LatestPlannedVolume(ctx, userID)
	if err != nil {
		if errors.Is(err, programs.ErrProgramNotFound) {
			return nil, apperr.NotFound("program", nil)
		}
		return nil, fmt.Errorf("get planned volume: %w", err)
	}

	return &ProgramAnalysis{
		ProgramID:      pv.ProgramID,
		MesocyclePhase: pv.MesocyclePhase,
		MuscleGroups:   volume.AnalyzePlan(pv.Sets),
	}, nil
}

func (a *Analyzer) Consistency(ctx context.Context, userID int) (_ *Consistency, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.consistency")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	defer a.observe("consistency", time.Now())

	spans, err := a.repo.WorkoutSpans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get workouts: %w", err)
	}
	c := CalculateConsistency(spans)
	return &c, nil
}
