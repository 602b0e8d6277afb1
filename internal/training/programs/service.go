package programs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=programs_test

type programsRepo interface {
	Create(ctx context.Context, userID int, params CreateParams) (*Program, error)
	CreateDefault(ctx context.Context, userID int, today time.Time) (int, error)
	Latest(ctx context.Context, userID int) (*Program, error)
	AdvancePhase(ctx context.Context, userID, programID int, target *Phase) (*PhaseAdvance, error)
	AddExercise(ctx context.Context, userID, dayID int, params ExerciseParams) (*ProgramExercise, int, error)
	UpdateExercise(ctx context.Context, userID, id int, update ExerciseUpdate) (*ProgramExercise, int, error)
	DeleteExercise(ctx context.Context, userID, id int) (int, []string, error)
	SwapExercise(ctx context.Context, userID, id, newExerciseID int) (*Swap, error)
	ReorderExercises(ctx context.Context, userID, dayID int, items []ReorderItem) error
	PlannedSets(ctx context.Context, programID int) (map[string]int, error)
}

type Service struct {
	repo programsRepo
	Now  func() time.Time
}

func NewService(repo programsRepo) *Service {
	return &Service{
		repo: repo,
		Now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, userID int, params CreateParams) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := params.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		if errors.Is(err, ErrInvalidExercise) {
			return nil, apperr.Validation("exercise_id", "Invalid exercise_id")
		}
		return nil, fmt.Errorf("create program: %w", err)
	}

	log.Debugf("program %d [%s] created for user %d with %d days", p.ID, p.Name, userID, len(p.Days))
	return p, nil
}

// CreateDefault sets up the default split for a freshly registered user.
func (s *Service) CreateDefault(ctx context.Context, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.create_default")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	programID, err := s.repo.CreateDefault(ctx, userID, s.Now().UTC())
	if err != nil {
		return fmt.Errorf("create default program: %w", err)
	}

	log.Debugf("default program %d created for user %d", programID, userID)
	return nil
}

func (s *Service) Latest(ctx context.Context, userID int) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.latest")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	p, err := s.repo.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProgramNotFound) {
			return nil, apperr.NotFound("program", nil)
		}
		return nil, fmt.Errorf("get latest program: %w", err)
	}
	return p, nil
}

type AdvanceRequest struct {
	Manual      bool   `json:"manual"`
	TargetPhase *Phase `json:"target_phase,omitempty"`
}

// AdvancePhase follows the mesocycle progression, or jumps to the requested phase when manual.
func (s *Service) AdvancePhase(ctx context.Context, userID, programID int, req AdvanceRequest) (_ *PhaseAdvance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.advance_phase")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var target *Phase
	if req.Manual {
		if req.TargetPhase == nil {
			return nil, apperr.Validation("target_phase", "target_phase is required when manual=true")
		}
		if !req.TargetPhase.Valid() {
			return nil, apperr.Validation("target_phase", "Invalid target_phase: %s", *req.TargetPhase)
		}
		target = req.TargetPhase
	}

	result, err := s.repo.AdvancePhase(ctx, userID, programID, target)
	if err != nil {
		if errors.Is(err, ErrProgramNotFound) {
			return nil, apperr.NotFound("program", programID)
		}
		return nil, fmt.Errorf("advance program phase: %w", err)
	}

	log.Debugf(
		"program %d: %s -> %s, week %d, %d exercises scaled by %.2f",
		programID, result.PreviousPhase, result.NewPhase, result.MesocycleWeek,
		result.ExercisesUpdated, result.VolumeMultiplier,
	)
	return result, nil
}

func (s *Service) warningFor(ctx context.Context, programID int, muscleGroups []string, removing bool) *string {
	planned, err := s.repo.PlannedSets(ctx, programID)
	if err != nil {
		// the edit is stored already, only the warning is lost
		log.Errorf("program %d planned sets for volume warning: %s", programID, err)
		return nil
	}
	return VolumeWarning(planned, muscleGroups, removing)
}

func (s *Service) AddExercise(ctx context.Context, userID, dayID int, params ExerciseParams) (_ *ExerciseChange, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.add_exercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := params.Validate(); err != nil {
		return nil, err
	}

	pe, programID, err := s.repo.AddExercise(ctx, userID, dayID, params)
	if err != nil {
		switch {
		case errors.Is(err, ErrProgramDayNotFound):
			return nil, apperr.NotFound("program day", dayID)
		case errors.Is(err, ErrInvalidExercise):
			return nil, apperr.Validation("exercise_id", "Invalid exercise_id")
		}
		return nil, fmt.Errorf("add program exercise: %w", err)
	}

	return &ExerciseChange{
		ProgramExercise: pe,
		VolumeWarning:   s.warningFor(ctx, programID, pe.MuscleGroups, false),
	}, nil
}

func (s *Service) UpdateExercise(ctx context.Context, userID, id int, update ExerciseUpdate) (_ *ExerciseChange, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.update_exercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if update.Empty() {
		return nil, apperr.Validation("sets", "At least one of sets, reps, rir is required")
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	pe, programID, err := s.repo.UpdateExercise(ctx, userID, id, update)
	if err != nil {
		if errors.Is(err, ErrProgramExerciseNotFound) {
			return nil, apperr.NotFound("program exercise", id)
		}
		return nil, fmt.Errorf("update program exercise: %w", err)
	}

	change := &ExerciseChange{ProgramExercise: pe}
	if update.Sets != nil {
		change.VolumeWarning = s.warningFor(ctx, programID, pe.MuscleGroups, false)
	}
	return change, nil
}

func (s *Service) DeleteExercise(ctx context.Context, userID, id int) (_ *ExerciseChange, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.delete_exercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	programID, muscleGroups, err := s.repo.DeleteExercise(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrProgramExerciseNotFound) {
			return nil, apperr.NotFound("program exercise", id)
		}
		return nil, fmt.Errorf("delete program exercise: %w", err)
	}

	return &ExerciseChange{
		VolumeWarning: s.warningFor(ctx, programID, muscleGroups, true),
	}, nil
}

func (s *Service) SwapExercise(ctx context.Context, userID, id int, req SwapRequest) (_ *SwapResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.swap_exercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if req.NewExerciseID <= 0 {
		return nil, apperr.Validation("new_exercise_id", "Missing required field: new_exercise_id")
	}

	swap, err := s.repo.SwapExercise(ctx, userID, id, req.NewExerciseID)
	if err != nil {
		var incompatible *IncompatibleExerciseError
		switch {
		case errors.Is(err, ErrProgramExerciseNotFound):
			return nil, apperr.NotFound("program exercise", id)
		case errors.Is(err, ErrExerciseNotFound):
			return nil, apperr.NotFound("exercise", req.NewExerciseID)
		case errors.As(err, &incompatible):
			return nil, apperr.Validation("new_exercise_id", "%s", incompatible.Error())
		}
		return nil, fmt.Errorf("swap program exercise: %w", err)
	}

	log.Debugf(
		"program exercise %d swapped: %s -> %s",
		id, swap.Before.ExerciseName, swap.After.ExerciseName,
	)

	result := &SwapResult{
		Swapped:         true,
		OldExerciseName: swap.Before.ExerciseName,
		NewExerciseName: swap.After.ExerciseName,
		ProgramExercise: &swap.After,
	}
	planned, err := s.repo.PlannedSets(ctx, swap.ProgramID)
	if err != nil {
		log.Errorf("program %d planned sets for swap warning: %s", swap.ProgramID, err)
		return result, nil
	}
	result.VolumeWarning = SwapWarning(planned, swap.Before.MuscleGroups, swap.After.MuscleGroups)
	return result, nil
}

type ReorderResult struct {
	Reordered bool `json:"reordered"`
}

func (s *Service) ReorderExercises(ctx context.Context, userID int, req ReorderRequest) (_ *ReorderResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.reorder_exercises")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.ReorderExercises(ctx, userID, req.ProgramDayID, req.ExerciseOrder); err != nil {
		switch {
		case errors.Is(err, ErrProgramDayNotFound):
			return nil, apperr.NotFound("program day", req.ProgramDayID)
		case errors.Is(err, ErrProgramExerciseNotFound):
			return nil, apperr.Validation("exercise_order", "All exercises must belong to program day %d", req.ProgramDayID)
		}
		return nil, fmt.Errorf("reorder program exercises: %w", err)
	}

	return &ReorderResult{Reordered: true}, nil
}

// Days lists the days of the user's latest program.
func (s *Service) Days(ctx context.Context, userID int) (_ []DaySummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.days")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	p, err := s.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.DaySummaries(), nil
}

// RecommendedDay returns the day of the user's latest program scheduled for today (UTC).
func (s *Service) RecommendedDay(ctx context.Context, userID int) (_ *Day, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.recommended_day")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	p, err := s.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}

	day, ok := p.RecommendedDay(s.Now().UTC())
	if !ok {
		return nil, apperr.NotFound("program day", nil)
	}
	return day, nil
}
