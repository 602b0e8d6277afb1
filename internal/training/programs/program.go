// Package programs holds the user's mesocycle plan: program days and the
// exercises prescribed on each of them.
package programs

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/2beens/fitflow/internal/apperr"
)

type Phase string

const (
	PhaseMEV    Phase = "mev"
	PhaseMAV    Phase = "mav"
	PhaseMRV    Phase = "mrv"
	PhaseDeload Phase = "deload"
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseMEV, PhaseMAV, PhaseMRV, PhaseDeload:
		return true
	}
	return false
}

// Next returns the phase that follows in the mesocycle, deload wraps back to mev.
func (p Phase) Next() Phase {
	switch p {
	case PhaseMEV:
		return PhaseMAV
	case PhaseMAV:
		return PhaseMRV
	case PhaseMRV:
		return PhaseDeload
	default:
		return PhaseMEV
	}
}

// relative weekly volume of each phase, mev being the base
var phaseVolume = map[Phase]float64{
	PhaseMEV:    1.0,
	PhaseMAV:    1.2,
	PhaseMRV:    1.38,
	PhaseDeload: 0.69,
}

// regular progression steps use fixed multipliers
var stepMultiplier = map[Phase]float64{
	PhaseMEV:    1.2,
	PhaseMAV:    1.15,
	PhaseMRV:    0.5,
	PhaseDeload: 2.0,
}

// VolumeMultiplier is the factor program set counts are scaled by when moving between phases.
func VolumeMultiplier(from, to Phase) float64 {
	if from == to {
		return 1
	}
	if from.Next() == to {
		return stepMultiplier[from]
	}
	return math.Round(phaseVolume[to]/phaseVolume[from]*1000) / 1000
}

type DayType string

const (
	DayTypeStrength DayType = "strength"
	DayTypeVO2Max   DayType = "vo2max"
)

const (
	MinExerciseSets = 1
	MaxExerciseSets = 10
)

// ScaleSets applies a phase multiplier to prescribed sets, kept within the allowed range.
func ScaleSets(sets int, multiplier float64) int {
	scaled := int(math.Round(float64(sets) * multiplier))
	return max(MinExerciseSets, min(MaxExerciseSets, scaled))
}

type Program struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	Name           string    `json:"name"`
	MesocycleWeek  int       `json:"mesocycle_week"`
	MesocyclePhase Phase     `json:"mesocycle_phase"`
	CreatedAt      time.Time `json:"created_at"`
	Days           []Day     `json:"program_days"`
}

type Day struct {
	ID        int               `json:"id"`
	ProgramID int               `json:"program_id"`
	DayOfWeek int               `json:"day_of_week"`
	DayName   string            `json:"day_name"`
	DayType   DayType           `json:"day_type"`
	Exercises []ProgramExercise `json:"exercises"`
}

type ProgramExercise struct {
	ID           int      `json:"id"`
	ProgramDayID int      `json:"program_day_id"`
	ExerciseID   int      `json:"exercise_id"`
	ExerciseName string   `json:"exercise_name"`
	MuscleGroups []string `json:"muscle_groups"`
	OrderIndex   int      `json:"order_index"`
	Sets         int      `json:"sets"`
	Reps         string   `json:"reps"`
	RIR          int      `json:"rir"`
}

type ExerciseParams struct {
	ExerciseID int    `json:"exercise_id"`
	Sets       int    `json:"sets"`
	Reps       string `json:"reps"`
	RIR        int    `json:"rir"`
}

func (p ExerciseParams) Validate() error {
	if p.ExerciseID <= 0 {
		return apperr.Validation("exercise_id", "exercise_id is required")
	}
	if p.Sets < MinExerciseSets || p.Sets > MaxExerciseSets {
		return apperr.Validation("sets", "Sets must be between %d and %d", MinExerciseSets, MaxExerciseSets)
	}
	if strings.TrimSpace(p.Reps) == "" {
		return apperr.Validation("reps", "reps is required")
	}
	if p.RIR < 0 || p.RIR > 4 {
		return apperr.Validation("rir", "RIR must be between 0 and 4")
	}
	return nil
}

type DayParams struct {
	DayOfWeek int              `json:"day_of_week"`
	DayName   string           `json:"day_name"`
	DayType   DayType          `json:"day_type"`
	Exercises []ExerciseParams `json:"exercises"`
}

type CreateParams struct {
	Name           string      `json:"name"`
	MesocyclePhase *Phase      `json:"mesocycle_phase,omitempty"`
	Days           []DayParams `json:"days"`
}

func (p *CreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("name", "name is required")
	}
	if len(p.Name) > 255 {
		return apperr.Validation("name", "name must be at most 255 characters")
	}
	if p.MesocyclePhase != nil && !p.MesocyclePhase.Valid() {
		return apperr.Validation("mesocycle_phase", "Invalid mesocycle_phase: %s", *p.MesocyclePhase)
	}
	for _, d := range p.Days {
		if d.DayOfWeek < 1 || d.DayOfWeek > 7 {
			return apperr.Validation("day_of_week", "day_of_week must be between 1 and 7")
		}
		if strings.TrimSpace(d.DayName) == "" {
			return apperr.Validation("day_name", "day_name is required")
		}
		if d.DayType != DayTypeStrength && d.DayType != DayTypeVO2Max {
			return apperr.Validation("day_type", "Invalid day_type: %s. Valid options: strength, vo2max", d.DayType)
		}
		for _, e := range d.Exercises {
			if err := e.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// PhaseAdvance reports what moving the program to its next phase changed.
type PhaseAdvance struct {
	ProgramID        int     `json:"program_id"`
	PreviousPhase    Phase   `json:"previous_phase"`
	NewPhase         Phase   `json:"new_phase"`
	MesocycleWeek    int     `json:"mesocycle_week"`
	VolumeMultiplier float64 `json:"volume_multiplier"`
	ExercisesUpdated int     `json:"exercises_updated"`
}

// Advance resolves the next phase and mesocycle week. Without a target the regular
// progression is followed. The week counts up and starts over at 1 once a deload is done.
func Advance(current Phase, week int, target *Phase) (next Phase, nextWeek int, multiplier float64) {
	next = current.Next()
	if target != nil {
		next = *target
	}
	nextWeek = week + 1
	if current == PhaseDeload && next != PhaseDeload {
		nextWeek = 1
	}
	return next, nextWeek, VolumeMultiplier(current, next)
}

// ExerciseUpdate changes the prescription of a program exercise, nil fields stay as they are.
type ExerciseUpdate struct {
	Sets *int    `json:"sets,omitempty"`
	Reps *string `json:"reps,omitempty"`
	RIR  *int    `json:"rir,omitempty"`
}

func (u ExerciseUpdate) Validate() error {
	if u.Sets != nil && (*u.Sets < MinExerciseSets || *u.Sets > MaxExerciseSets) {
		return apperr.Validation("sets", "Sets must be between %d and %d", MinExerciseSets, MaxExerciseSets)
	}
	if u.Reps != nil && strings.TrimSpace(*u.Reps) == "" {
		return apperr.Validation("reps", "reps must not be empty")
	}
	if u.RIR != nil && (*u.RIR < 0 || *u.RIR > 4) {
		return apperr.Validation("rir", "RIR must be between 0 and 4")
	}
	return nil
}

func (u ExerciseUpdate) Empty() bool {
	return u.Sets == nil && u.Reps == nil && u.RIR == nil
}

// ExerciseChange is the outcome of editing a program exercise.
type ExerciseChange struct {
	ProgramExercise *ProgramExercise `json:"program_exercise,omitempty"`
	VolumeWarning   *string          `json:"volume_warning"`
}

// SharesMuscleGroup reports whether two exercises train at least one common muscle group.
// Only such exercises can replace each other in a program.
func SharesMuscleGroup(a, b []string) bool {
	for _, ga := range a {
		for _, gb := range b {
			if ga == gb {
				return true
			}
		}
	}
	return false
}

type IncompatibleExerciseError struct {
	Current           string
	Replacement       string
	CurrentGroups     []string
	ReplacementGroups []string
}

func (e *IncompatibleExerciseError) Error() string {
	return fmt.Sprintf(
		"Exercise %q is incompatible with %q. Old targets: [%s], New targets: [%s]",
		e.Replacement, e.Current,
		strings.Join(e.CurrentGroups, ", "), strings.Join(e.ReplacementGroups, ", "),
	)
}

type SwapRequest struct {
	NewExerciseID int `json:"new_exercise_id"`
}

// Swap is a program exercise before and after its exercise was replaced.
// Order, sets, reps and RIR carry over.
type Swap struct {
	ProgramID int
	Before    ProgramExercise
	After     ProgramExercise
}

type SwapResult struct {
	Swapped         bool             `json:"swapped"`
	OldExerciseName string           `json:"old_exercise_name"`
	NewExerciseName string           `json:"new_exercise_name"`
	ProgramExercise *ProgramExercise `json:"program_exercise"`
	VolumeWarning   *string          `json:"volume_warning"`
}

type ReorderItem struct {
	ProgramExerciseID int  `json:"program_exercise_id"`
	NewOrderIndex     *int `json:"new_order_index"`
}

type ReorderRequest struct {
	ProgramDayID  int           `json:"program_day_id"`
	ExerciseOrder []ReorderItem `json:"exercise_order"`
}

func (r ReorderRequest) Validate() error {
	if r.ProgramDayID <= 0 {
		return apperr.Validation("program_day_id", "Missing required field: program_day_id")
	}
	if len(r.ExerciseOrder) == 0 {
		return apperr.Validation("exercise_order", "exercise_order must list at least one exercise")
	}
	seen := make(map[int]bool, len(r.ExerciseOrder))
	for _, item := range r.ExerciseOrder {
		if item.ProgramExerciseID <= 0 || item.NewOrderIndex == nil {
			return apperr.Validation("exercise_order", "Each exercise_order item must have program_exercise_id and new_order_index")
		}
		if *item.NewOrderIndex < 0 {
			return apperr.Validation("exercise_order", "new_order_index must be non-negative")
		}
		if seen[item.ProgramExerciseID] {
			return apperr.Validation("exercise_order", "program exercise %d listed more than once", item.ProgramExerciseID)
		}
		seen[item.ProgramExerciseID] = true
	}
	return nil
}

// DaySummary is a program day without its exercises, for picking a session to train.
type DaySummary struct {
	ID            int     `json:"id"`
	ProgramID     int     `json:"program_id"`
	DayOfWeek     int     `json:"day_of_week"`
	DayName       string  `json:"day_name"`
	DayType       DayType `json:"day_type"`
	ExerciseCount int     `json:"exercise_count"`
}

func (p *Program) DaySummaries() []DaySummary {
	summaries := make([]DaySummary, 0, len(p.Days))
	for _, d := range p.Days {
		summaries = append(summaries, DaySummary{
			ID:            d.ID,
			ProgramID:     d.ProgramID,
			DayOfWeek:     d.DayOfWeek,
			DayName:       d.DayName,
			DayType:       d.DayType,
			ExerciseCount: len(d.Exercises),
		})
	}
	return summaries
}

// RecommendedDay picks the program day scheduled for the date's weekday (monday is 1).
// A sunday without its own day falls back to the saturday session.
func (p *Program) RecommendedDay(date time.Time) (*Day, bool) {
	dayOfWeek := int(date.Weekday())
	if dayOfWeek == 0 {
		dayOfWeek = 7
	}

	candidates := []int{dayOfWeek}
	if dayOfWeek == 7 {
		candidates = append(candidates, 6)
	}
	for _, want := range candidates {
		for i := range p.Days {
			if p.Days[i].DayOfWeek == want {
				return &p.Days[i], true
			}
		}
	}
	return nil, false
}
