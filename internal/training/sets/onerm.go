package sets

import (
	"math"

	"github.com/2beens/fitflow/internal/apperr"
)

// EstimateOneRepMax uses the Epley formula with reps in reserve folded in:
// weight * (1 + (reps - rir) / 30), rounded to one decimal. Effective reps of zero
// or less are accepted and yield weight or less.
func EstimateOneRepMax(weightKg float64, reps, rir int) (float64, error) {
	if weightKg <= 0 {
		return 0, apperr.Validation("weight_kg", "Weight must be greater than 0")
	}
	if reps <= 0 {
		return 0, apperr.Validation("reps", "Reps must be greater than 0")
	}
	if rir < 0 || rir > 4 {
		return 0, apperr.Validation("rir", "RIR must be between 0 and 4")
	}
	return oneRepMax(weightKg, reps, rir), nil
}

func oneRepMax(weightKg float64, reps, rir int) float64 {
	return roundTo1(weightKg * (1 + float64(reps-rir)/30))
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
