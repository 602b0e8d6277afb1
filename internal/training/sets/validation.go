package sets

import (
	"github.com/2beens/fitflow/internal/apperr"
)

// Validate checks the logged values before anything is stored.
func (p LogParams) Validate() error {
	if p.WorkoutID <= 0 {
		return apperr.Validation("workout_id", "workout_id is required")
	}
	if p.ExerciseID <= 0 {
		return apperr.Validation("exercise_id", "exercise_id is required")
	}
	if p.WeightKg <= 0 || p.WeightKg > MaxWeightKg {
		return apperr.Validation("weight_kg", "Weight must be greater than 0 and at most %d kg", MaxWeightKg)
	}
	if p.Reps < MinReps || p.Reps > MaxReps {
		return apperr.Validation("reps", "Reps must be between %d and %d", MinReps, MaxReps)
	}
	if p.RIR < MinRIR || p.RIR > MaxRIR {
		return apperr.Validation("rir", "RIR must be between %d and %d", MinRIR, MaxRIR)
	}
	if p.SetNumber != nil && *p.SetNumber < 1 {
		return apperr.Validation("set_number", "set_number must be positive")
	}
	if p.Notes != nil && len([]rune(*p.Notes)) > MaxNotesLength {
		return apperr.Validation("notes", "Notes must be %d characters or less", MaxNotesLength)
	}
	if p.LocalID != nil && len(p.LocalID.String()) > maxLocalIDLen {
		return apperr.Validation("localId", "localId must be at most %d characters", maxLocalIDLen)
	}
	return nil
}
