package exercises

import (
	"fmt"
	"strings"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/training/volume"

	"gopkg.in/yaml.v3"
)

const defaultRIR = 2

type Exercise struct {
	ID                 int      `json:"id" yaml:"-"`
	Name               string   `json:"name" yaml:"name"`
	PrimaryMuscleGroup string   `json:"primary_muscle_group" yaml:"primary_muscle_group"`
	MuscleGroups       []string `json:"muscle_groups" yaml:"muscle_groups"`
	Equipment          string   `json:"equipment" yaml:"equipment"`
	MovementPattern    string   `json:"movement_pattern" yaml:"movement_pattern"`
	Difficulty         string   `json:"difficulty" yaml:"difficulty"`
	DefaultSets        int      `json:"default_sets" yaml:"default_sets"`
	DefaultReps        string   `json:"default_reps" yaml:"default_reps"`
	DefaultRIR         int      `json:"default_rir" yaml:"-"`
	Description        string   `json:"description" yaml:"description"`
}

// UnmarshalYAML reads a library entry. default_rir falls back to the library default
// only when the key is missing, an explicit 0 means training to failure.
func (e *Exercise) UnmarshalYAML(node *yaml.Node) error {
	type plain Exercise
	var raw struct {
		plain      `yaml:",inline"`
		DefaultRIR *int `yaml:"default_rir"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*e = Exercise(raw.plain)
	e.DefaultRIR = defaultRIR
	if raw.DefaultRIR != nil {
		e.DefaultRIR = *raw.DefaultRIR
	}
	return nil
}

var (
	Equipments       = []string{"barbell", "dumbbell", "cable", "machine", "bodyweight"}
	MovementPatterns = []string{"compound", "isolation"}
	Difficulties     = []string{"beginner", "intermediate", "advanced"}
)

func oneOf(field, value string, valid []string) error {
	for _, v := range valid {
		if v == value {
			return nil
		}
	}
	return apperr.Validation(field, "Invalid %s: %s. Valid options: %s", field, value, strings.Join(valid, ", "))
}

// Filter narrows the library listing. Empty fields do not filter.
type Filter struct {
	MuscleGroup     string
	Equipment       string
	MovementPattern string
	Difficulty      string
}

func (f Filter) Validate() error {
	if f.MuscleGroup != "" {
		if err := volume.ValidateMuscleGroup(f.MuscleGroup); err != nil {
			return err
		}
	}
	if f.Equipment != "" {
		if err := oneOf("equipment", f.Equipment, Equipments); err != nil {
			return err
		}
	}
	if f.MovementPattern != "" {
		if err := oneOf("movement_pattern", f.MovementPattern, MovementPatterns); err != nil {
			return err
		}
	}
	if f.Difficulty != "" {
		if err := oneOf("difficulty", f.Difficulty, Difficulties); err != nil {
			return err
		}
	}
	return nil
}

// MuscleGroups resolves the filter group to the names stored on exercises.
// back covers the lats and mid back exercises.
func (f Filter) MuscleGroups() []string {
	switch f.MuscleGroup {
	case "":
		return nil
	case "back":
		return []string{"back", "lats", "mid_back"}
	default:
		return []string{f.MuscleGroup}
	}
}

func (f Filter) cacheKey() string {
	return fmt.Sprintf("exercises::%s|%s|%s|%s", f.MuscleGroup, f.Equipment, f.MovementPattern, f.Difficulty)
}

// Validate checks an exercise before it is stored in the library.
func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return apperr.Validation("name", "name is required")
	}
	if err := volume.ValidateMuscleGroup(e.PrimaryMuscleGroup); err != nil {
		return err
	}
	for _, g := range e.MuscleGroups {
		if err := volume.ValidateMuscleGroup(g); err != nil {
			return err
		}
	}
	if err := oneOf("equipment", e.Equipment, Equipments); err != nil {
		return err
	}
	if err := oneOf("movement_pattern", e.MovementPattern, MovementPatterns); err != nil {
		return err
	}
	if err := oneOf("difficulty", e.Difficulty, Difficulties); err != nil {
		return err
	}
	if e.DefaultRIR < 0 || e.DefaultRIR > 4 {
		return apperr.Validation("default_rir", "default_rir must be between 0 and 4")
	}
	return nil
}

// Normalize fills the library defaults and puts the primary group first in MuscleGroups.
func (e *Exercise) Normalize() {
	groups := []string{e.PrimaryMuscleGroup}
	for _, g := range e.MuscleGroups {
		if g != e.PrimaryMuscleGroup {
			groups = append(groups, g)
		}
	}
	e.MuscleGroups = groups
	if e.DefaultSets == 0 {
		e.DefaultSets = 3
	}
	if e.DefaultReps == "" {
		e.DefaultReps = "8-12"
	}
}

type SetPerformance struct {
	WeightKg float64 `json:"weight_kg"`
	Reps     int     `json:"reps"`
	RIR      int     `json:"rir"`
}

// LastPerformance is what the user did on an exercise in their latest completed workout.
type LastPerformance struct {
	LastWorkoutDate string           `json:"last_workout_date"`
	Sets            []SetPerformance `json:"sets"`
	EstimatedOneRM  float64          `json:"estimated_1rm"`
}
