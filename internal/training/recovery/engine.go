// Package recovery turns the daily 3 question check-in into a volume adjustment
// for the day's training.
package recovery

import (
	"regexp"
	"time"

	"github.com/2beens/fitflow/internal/apperr"
)

const DateLayout = "2006-01-02"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type VolumeAdjustment string

const (
	AdjustNone        VolumeAdjustment = "none"
	AdjustReduce1Set  VolumeAdjustment = "reduce_1_set"
	AdjustReduce2Sets VolumeAdjustment = "reduce_2_sets"
	AdjustRestDay     VolumeAdjustment = "rest_day"
)

// SetsToDrop is the number of sets to take off each planned exercise, -1 for a rest day.
func (v VolumeAdjustment) SetsToDrop() int {
	switch v {
	case AdjustReduce1Set:
		return 1
	case AdjustReduce2Sets:
		return 2
	case AdjustRestDay:
		return -1
	default:
		return 0
	}
}

// CheckIn holds the three subscores, each in [1, 5].
type CheckIn struct {
	Date             string `json:"date"`
	SleepQuality     int    `json:"sleep_quality"`
	MuscleSoreness   int    `json:"muscle_soreness"`
	MentalMotivation int    `json:"mental_motivation"`
}

type Result struct {
	TotalScore       int              `json:"total_score"`
	VolumeAdjustment VolumeAdjustment `json:"volume_adjustment"`
}

// AdjustmentForScore maps a total score in [3, 15] to the volume adjustment.
func AdjustmentForScore(total int) VolumeAdjustment {
	switch {
	case total >= 12:
		return AdjustNone
	case total >= 9:
		return AdjustReduce1Set
	case total >= 6:
		return AdjustReduce2Sets
	default:
		return AdjustRestDay
	}
}

func (c CheckIn) Validate() error {
	if c.SleepQuality < 1 || c.SleepQuality > 5 {
		return apperr.Validation("sleep_quality", "Sleep quality must be between 1 and 5")
	}
	if c.MuscleSoreness < 1 || c.MuscleSoreness > 5 {
		return apperr.Validation("muscle_soreness", "Muscle soreness must be between 1 and 5")
	}
	if c.MentalMotivation < 1 || c.MentalMotivation > 5 {
		return apperr.Validation("mental_motivation", "Mental motivation must be between 1 and 5")
	}
	if !dateRegex.MatchString(c.Date) {
		return apperr.Validation("date", "Date must be in ISO format (YYYY-MM-DD)")
	}
	if _, err := time.Parse(DateLayout, c.Date); err != nil {
		return apperr.Validation("date", "Date must be in ISO format (YYYY-MM-DD)")
	}
	return nil
}

// Evaluate validates the check-in and scores it.
func Evaluate(c CheckIn) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	total := c.SleepQuality + c.MuscleSoreness + c.MentalMotivation
	return Result{
		TotalScore:       total,
		VolumeAdjustment: AdjustmentForScore(total),
	}, nil
}
