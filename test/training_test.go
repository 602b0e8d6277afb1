//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/fitflow/internal/training/analytics"
	"github.com/2beens/fitflow/internal/training/bodyweight"
	"github.com/2beens/fitflow/internal/training/cardio"
	"github.com/2beens/fitflow/internal/training/programs"
	"github.com/2beens/fitflow/internal/training/recovery"
	"github.com/2beens/fitflow/internal/training/sets"
	"github.com/2beens/fitflow/internal/training/volume"
	"github.com/2beens/fitflow/internal/training/workouts"
)

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func (s *IntegrationTestSuite) TestWorkoutFlow() {
	ctx := context.Background()
	user := s.registerUser(ctx)
	benchID := s.exerciseID("Barbell Bench Press")

	var program programs.Program
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/programs", user.Token, nil, &program))
	dayID := program.Days[0].ID

	var workout workouts.Workout
	status := s.request(ctx, http.MethodPost, "/api/workouts", user.Token, map[string]any{
		"program_day_id": dayID,
		"date":           today(),
	}, &workout)
	s.Require().Equal(http.StatusCreated, status)
	s.Equal(workouts.StatusNotStarted, workout.Status)

	var started workouts.Workout
	status = s.request(ctx, http.MethodPatch, fmt.Sprintf("/api/workouts/%d", workout.ID), user.Token,
		map[string]any{"status": "in_progress"}, &started)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NotNil(started.StartedAt)

	logSet := map[string]any{
		"workout_id":  workout.ID,
		"exercise_id": benchID,
		"weight_kg":   100,
		"reps":        5,
		"rir":         2,
		"localId":     "ios-set-1",
	}
	var first, retried sets.LogResponse
	s.Require().Equal(http.StatusCreated, s.request(ctx, http.MethodPost, "/api/sets", user.Token, logSet, &first))
	s.Equal(110.0, first.EstimatedOneRM)
	s.True(first.Synced)

	// offline client retrying the same set
	s.Require().Equal(http.StatusCreated, s.request(ctx, http.MethodPost, "/api/sets", user.Token, logSet, &retried))
	s.Equal(first.ID, retried.ID)

	logSet["localId"] = "ios-set-2"
	s.Require().Equal(http.StatusCreated, s.request(ctx, http.MethodPost, "/api/sets", user.Token, logSet, nil))

	var logged []sets.Set
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet,
		fmt.Sprintf("/api/sets?workout_id=%d", workout.ID), user.Token, nil, &logged))
	s.Require().Len(logged, 2)
	s.Equal(1, logged[0].SetNumber)
	s.Equal(2, logged[1].SetNumber)

	var errResp map[string]string
	status = s.request(ctx, http.MethodPost, "/api/sets", user.Token, map[string]any{
		"workout_id":  workout.ID,
		"exercise_id": 999999,
		"weight_kg":   100,
		"reps":        5,
		"rir":         2,
	}, &errResp)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("Invalid workout_id or exercise_id", errResp["error"])

	var completed workouts.Workout
	status = s.request(ctx, http.MethodPatch, fmt.Sprintf("/api/workouts/%d", workout.ID), user.Token,
		map[string]any{"status": "completed"}, &completed)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NotNil(completed.CompletedAt)
	s.Require().NotNil(completed.TotalVolumeKg)
	s.Equal(1000.0, *completed.TotalVolumeKg)
	s.Require().NotNil(completed.AverageRIR)
	s.Equal(2.0, *completed.AverageRIR)

	var consistency analytics.Consistency
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/analytics/consistency", user.Token, nil, &consistency))
	s.Equal(1, consistency.TotalWorkouts)
	s.Equal(1.0, consistency.AdherenceRate)

	var progression []analytics.OneRMPoint
	status = s.request(ctx, http.MethodGet,
		fmt.Sprintf("/api/analytics/1rm-progression?exercise_id=%d&start_date=%s&end_date=%s", benchID, today(), today()),
		user.Token, nil, &progression)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Len(progression, 1)
	s.Equal(110.0, progression[0].EstimatedOneRM)

	var week volume.CurrentWeek
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/analytics/volume-current-week", user.Token, nil, &week))
	var chest *volume.GroupProgress
	for i := range week.MuscleGroups {
		if week.MuscleGroups[i].MuscleGroup == "chest" {
			chest = &week.MuscleGroups[i]
		}
	}
	s.Require().NotNil(chest)
	s.Equal(2, chest.CompletedSets)
	s.Positive(chest.PlannedSets)
}

func (s *IntegrationTestSuite) TestWorkout_otherUserNotFound() {
	ctx := context.Background()
	alice := s.registerUser(ctx)
	bob := s.registerUser(ctx)

	var workout workouts.Workout
	status := s.request(ctx, http.MethodPost, "/api/workouts", alice.Token, map[string]any{
		"date": today(),
	}, &workout)
	s.Require().Equal(http.StatusCreated, status)

	s.Equal(http.StatusNotFound, s.request(ctx, http.MethodGet, fmt.Sprintf("/api/workouts/%d", workout.ID), bob.Token, nil, nil))
	s.Equal(http.StatusOK, s.request(ctx, http.MethodGet, fmt.Sprintf("/api/workouts/%d", workout.ID), alice.Token, nil, nil))
}

func (s *IntegrationTestSuite) TestRecoveryAssessment() {
	ctx := context.Background()
	alice := s.registerUser(ctx)
	bob := s.registerUser(ctx)

	path := fmt.Sprintf("/api/recovery-assessments/%d/today", alice.ID)
	s.Equal(http.StatusNotFound, s.request(ctx, http.MethodGet, path, alice.Token, nil, nil))

	var result recovery.Result
	status := s.request(ctx, http.MethodPost, "/api/recovery-assessments", alice.Token, map[string]any{
		"date":              today(),
		"sleep_quality":     4,
		"muscle_soreness":   3,
		"mental_motivation": 3,
	}, &result)
	s.Require().Equal(http.StatusCreated, status)
	s.Equal(10, result.TotalScore)
	s.Equal(recovery.AdjustReduce1Set, result.VolumeAdjustment)

	s.Equal(http.StatusOK, s.request(ctx, http.MethodGet, path, alice.Token, nil, nil))
	s.Equal(http.StatusForbidden, s.request(ctx, http.MethodGet, path, bob.Token, nil, nil))
}

func (s *IntegrationTestSuite) TestBodyWeight() {
	ctx := context.Background()
	user := s.registerUser(ctx)

	status := s.request(ctx, http.MethodPost, "/api/body-weight", user.Token, map[string]any{
		"weight_kg": 10,
	}, nil)
	s.Equal(http.StatusBadRequest, status)

	var entry bodyweight.Entry
	status = s.request(ctx, http.MethodPost, "/api/body-weight", user.Token, map[string]any{
		"weight_kg": 81.4,
		"notes":     "morning, fasted",
	}, &entry)
	s.Require().Equal(http.StatusCreated, status)
	s.Equal(81.4, entry.WeightKg)

	var summary bodyweight.Summary
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/body-weight/latest", user.Token, nil, &summary))
	s.Require().NotNil(summary.Latest)
	s.Equal(entry.ID, summary.Latest.ID)

	var entries []bodyweight.Entry
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/body-weight?limit=5", user.Token, nil, &entries))
	s.Len(entries, 1)

	s.Equal(http.StatusNoContent, s.request(ctx, http.MethodDelete, fmt.Sprintf("/api/body-weight/%d", entry.ID), user.Token, nil, nil))
	s.Equal(http.StatusNotFound, s.request(ctx, http.MethodDelete, fmt.Sprintf("/api/body-weight/%d", entry.ID), user.Token, nil, nil))
}

func (s *IntegrationTestSuite) TestAdvancePhase() {
	ctx := context.Background()
	user := s.registerUser(ctx)

	var program programs.Program
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/programs", user.Token, nil, &program))

	var advance programs.PhaseAdvance
	status := s.request(ctx, http.MethodPatch, fmt.Sprintf("/api/programs/%d/advance-phase", program.ID), user.Token,
		map[string]any{}, &advance)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(programs.PhaseMEV, advance.PreviousPhase)
	s.Equal(programs.PhaseMAV, advance.NewPhase)
	s.Equal(2, advance.MesocycleWeek)

	var analysis analytics.ProgramAnalysis
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/analytics/program-volume-analysis", user.Token, nil, &analysis))
	s.Equal(program.ID, analysis.ProgramID)
	s.Equal(programs.PhaseMAV, analysis.MesocyclePhase)
	s.NotEmpty(analysis.MuscleGroups)
}

func (s *IntegrationTestSuite) TestProgramDays_swapAndReorder() {
	ctx := context.Background()
	alice := s.registerUser(ctx)
	bob := s.registerUser(ctx)

	var program programs.Program
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/programs", alice.Token, nil, &program))
	pushDay := program.Days[0]
	s.Require().GreaterOrEqual(len(pushDay.Exercises), 2)

	var days []programs.DaySummary
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/program-days", alice.Token, nil, &days))
	s.Len(days, 6)
	s.Equal(len(pushDay.Exercises), days[0].ExerciseCount)

	var recommended programs.Day
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/program-days/recommended", alice.Token, nil, &recommended))
	s.Equal(program.ID, recommended.ProgramID)

	var bench programs.ProgramExercise
	for _, pe := range pushDay.Exercises {
		if pe.ExerciseName == "Barbell Bench Press" {
			bench = pe
		}
	}
	s.Require().NotZero(bench.ID)

	swapPath := fmt.Sprintf("/api/program-exercises/%d/swap", bench.ID)
	status := s.request(ctx, http.MethodPut, swapPath, bob.Token, map[string]any{
		"new_exercise_id": s.exerciseID("Dumbbell Bench Press"),
	}, nil)
	s.Equal(http.StatusNotFound, status)

	status = s.request(ctx, http.MethodPut, swapPath, alice.Token, map[string]any{
		"new_exercise_id": s.exerciseID("Barbell Curl"),
	}, nil)
	s.Equal(http.StatusBadRequest, status)

	var swap programs.SwapResult
	status = s.request(ctx, http.MethodPut, swapPath, alice.Token, map[string]any{
		"new_exercise_id": s.exerciseID("Dumbbell Bench Press"),
	}, &swap)
	s.Require().Equal(http.StatusOK, status)
	s.True(swap.Swapped)
	s.Equal("Barbell Bench Press", swap.OldExerciseName)
	s.Equal("Dumbbell Bench Press", swap.NewExerciseName)

	order := make([]map[string]any, 0, len(pushDay.Exercises))
	for i, pe := range pushDay.Exercises {
		order = append(order, map[string]any{
			"program_exercise_id": pe.ID,
			"new_order_index":     len(pushDay.Exercises) - 1 - i,
		})
	}
	reorder := map[string]any{"program_day_id": pushDay.ID, "exercise_order": order}
	s.Equal(http.StatusNotFound, s.request(ctx, http.MethodPatch, "/api/program-exercises/batch-reorder", bob.Token, reorder, nil))
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodPatch, "/api/program-exercises/batch-reorder", alice.Token, reorder, nil))

	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/programs", alice.Token, nil, &program))
	reordered := program.Days[0].Exercises
	s.Equal(pushDay.Exercises[len(pushDay.Exercises)-1].ID, reordered[0].ID)
}

func (s *IntegrationTestSuite) TestVO2maxSessions() {
	ctx := context.Background()
	alice := s.registerUser(ctx)
	bob := s.registerUser(ctx)

	var created cardio.CreateResult
	status := s.request(ctx, http.MethodPost, "/api/vo2max-sessions", alice.Token, map[string]any{
		"date":                today(),
		"duration_minutes":    32,
		"protocol_type":       "norwegian_4x4",
		"average_heart_rate":  168,
		"intervals_completed": 4,
	}, &created)
	s.Require().Equal(http.StatusCreated, status)
	s.Equal(cardio.StatusCompleted, created.CompletionStatus)
	s.NotNil(created.EstimatedVO2max)

	status = s.request(ctx, http.MethodPost, "/api/vo2max-sessions", alice.Token, map[string]any{
		"date":             today(),
		"duration_minutes": 5,
		"protocol_type":    "zone2",
	}, nil)
	s.Equal(http.StatusBadRequest, status)

	path := fmt.Sprintf("/api/vo2max-sessions/%d", created.SessionID)
	s.Equal(http.StatusNotFound, s.request(ctx, http.MethodGet, path, bob.Token, nil, nil))

	var session cardio.Session
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodPatch, path, alice.Token, map[string]any{"rpe": 9}, &session))
	s.Require().NotNil(session.RPE)
	s.Equal(9, *session.RPE)
	s.Equal(today(), session.Date)

	var list cardio.ListResult
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/vo2max-sessions?protocol_type=norwegian_4x4", alice.Token, nil, &list))
	s.Equal(1, list.Count)
	s.False(list.HasMore)

	var progression struct {
		Sessions []cardio.ProgressionPoint `json:"sessions"`
	}
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/analytics/vo2max-progression", alice.Token, nil, &progression))
	s.Len(progression.Sessions, 1)
}
