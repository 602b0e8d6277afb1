package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/2beens/fitflow/internal/training/programs"
	"github.com/2beens/fitflow/internal/training/sets"
	"github.com/2beens/fitflow/internal/training/volume"
)

const (
	DefaultTrendWeeks = 8
	MaxTrendWeeks     = 52
)

// WorkoutSpan is the part of a workout row the consistency report reads.
type WorkoutSpan struct {
	Status      string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

type Consistency struct {
	AdherenceRate float64 `json:"adherence_rate"`
	// AvgSessionDuration is in seconds
	AvgSessionDuration float64 `json:"avg_session_duration"`
	TotalWorkouts      int     `json:"total_workouts"`
}

// CalculateConsistency summarizes a user's workout history in one pass.
// Adherence is completed over all workouts, 0 for an empty history.
// Only workouts with both timestamps count toward the average duration.
func CalculateConsistency(workouts []WorkoutSpan) Consistency {
	var (
		completed int
		timed     int
		total     time.Duration
	)
	for _, w := range workouts {
		if w.Status == "completed" {
			completed++
		}
		if w.StartedAt != nil && w.CompletedAt != nil {
			timed++
			total += w.CompletedAt.Sub(*w.StartedAt)
		}
	}

	c := Consistency{TotalWorkouts: len(workouts)}
	if len(workouts) > 0 {
		c.AdherenceRate = math.Round(float64(completed)/float64(len(workouts))*1000) / 1000
	}
	if timed > 0 {
		c.AvgSessionDuration = math.Round(total.Seconds() / float64(timed))
	}
	return c
}

// LoggedSet is one set of a completed workout, as read for the 1RM progression.
type LoggedSet struct {
	Date     time.Time
	WeightKg float64
	Reps     int
	RIR      int
}

type OneRMPoint struct {
	Date           string  `json:"date"`
	EstimatedOneRM float64 `json:"estimated_1rm"`
}

// Progression keeps the best estimated 1RM of each workout date, oldest first.
func Progression(logged []LoggedSet) []OneRMPoint {
	best := make(map[string]float64)
	for _, s := range logged {
		est, err := sets.EstimateOneRepMax(s.WeightKg, s.Reps, s.RIR)
		if err != nil {
			continue
		}
		day := s.Date.Format(volume.DateLayout)
		if current, ok := best[day]; !ok || est > current {
			best[day] = est
		}
	}

	points := make([]OneRMPoint, 0, len(best))
	for day, est := range best {
		points = append(points, OneRMPoint{Date: day, EstimatedOneRM: est})
	}
	// layout sorts lexically
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

type VolumeTrends struct {
	Weeks []volume.WeekVolume `json:"weeks"`
}

type ProgramAnalysis struct {
	ProgramID      int                   `json:"program_id"`
	MesocyclePhase programs.Phase        `json:"mesocycle_phase"`
	MuscleGroups   []volume.PlannedGroup `json:"muscle_groups"`
}
