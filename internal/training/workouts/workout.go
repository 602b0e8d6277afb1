package workouts

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var validStatuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range validStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func validStatusNames() string {
	names := make([]string, len(validStatuses))
	for i, s := range validStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

type Workout struct {
	ID            int               `json:"id"`
	UserID        int               `json:"user_id"`
	ProgramDayID  *int              `json:"program_day_id"`
	Date          string            `json:"date"`
	StartedAt     *time.Time        `json:"started_at"`
	CompletedAt   *time.Time        `json:"completed_at"`
	Status        Status            `json:"status"`
	TotalVolumeKg *float64          `json:"total_volume_kg"`
	AverageRIR    *float64          `json:"average_rir"`
	Synced        bool              `json:"synced"`
	DayName       *string           `json:"day_name"`
	DayType       *string           `json:"day_type"`
	Exercises     []PlannedExercise `json:"exercises,omitempty"`
}

// PlannedExercise is an exercise the program day of a workout prescribes.
type PlannedExercise struct {
	ID           int    `json:"id"`
	ProgramDayID int    `json:"program_day_id"`
	ExerciseID   int    `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
	OrderIndex   int    `json:"order_index"`
	Sets         int    `json:"sets"`
	Reps         string `json:"reps"`
	RIR          int    `json:"rir"`
}

type CreateParams struct {
	ProgramDayID *int   `json:"program_day_id"`
	Date         string `json:"date"`
}

type ListParams struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// StatusChange is what a status update writes, resolved against the stored workout.
type StatusChange struct {
	Status Status
	// StartNow sets started_at when it is still empty.
	StartNow bool
	// Complete stamps completed_at and stores the volume and average RIR of the sets.
	Complete bool
	// ClearCompleted resets completed_at, used when a finished workout is reopened.
	ClearCompleted bool
	At             time.Time
}

// ChangeFor resolves how moving to the given status touches the workout timestamps.
// Cancelling or resetting to not_started only changes the status.
func ChangeFor(status Status, at time.Time) StatusChange {
	change := StatusChange{Status: status, At: at}
	switch status {
	case StatusInProgress:
		change.StartNow = true
		change.ClearCompleted = true
	case StatusCompleted:
		change.Complete = true
	}
	return change
}
