// Package volume compares weekly per muscle group set counts against the
// volume landmarks (MEV, MAV, MRV) used for mesocycle planning.
package volume

import (
	"sort"
	"strings"

	"github.com/2beens/fitflow/internal/apperr"
)

// Landmarks are weekly set thresholds for a muscle group: minimum effective,
// maximum adaptive and maximum recoverable volume.
type Landmarks struct {
	MEV int `json:"mev"`
	MAV int `json:"mav"`
	MRV int `json:"mrv"`
}

var landmarks = map[string]Landmarks{
	"chest":      {MEV: 8, MAV: 14, MRV: 22},
	"biceps":     {MEV: 6, MAV: 12, MRV: 20},
	"triceps":    {MEV: 6, MAV: 12, MRV: 22},
	"quads":      {MEV: 8, MAV: 14, MRV: 24},
	"hamstrings": {MEV: 6, MAV: 12, MRV: 20},
	"glutes":     {MEV: 6, MAV: 12, MRV: 20},
	"calves":     {MEV: 8, MAV: 14, MRV: 22},
	"abs":        {MEV: 8, MAV: 16, MRV: 28},

	"lats":       {MEV: 10, MAV: 16, MRV: 26},
	"traps":      {MEV: 6, MAV: 12, MRV: 20},
	"mid_back":   {MEV: 10, MAV: 16, MRV: 26},
	"lower_back": {MEV: 6, MAV: 12, MRV: 20},

	"front_delts": {MEV: 4, MAV: 8, MRV: 14},
	"side_delts":  {MEV: 8, MAV: 16, MRV: 26},
	"rear_delts":  {MEV: 8, MAV: 14, MRV: 22},

	"core":        {MEV: 8, MAV: 16, MRV: 28},
	"obliques":    {MEV: 6, MAV: 12, MRV: 20},
	"forearms":    {MEV: 4, MAV: 8, MRV: 16},
	"brachialis":  {MEV: 4, MAV: 8, MRV: 14},
	"hip_flexors": {MEV: 4, MAV: 8, MRV: 14},

	// coarse names older clients still send
	"back":      {MEV: 10, MAV: 16, MRV: 26},
	"shoulders": {MEV: 8, MAV: 14, MRV: 22},
}

var validMuscleGroups = func() []string {
	names := make([]string, 0, len(landmarks))
	for name := range landmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// LandmarksFor returns the thresholds of a muscle group, zero for groups without an entry.
func LandmarksFor(muscleGroup string) Landmarks {
	return landmarks[muscleGroup]
}

// ValidMuscleGroups returns the recognized muscle group names, sorted.
func ValidMuscleGroups() []string {
	out := make([]string, len(validMuscleGroups))
	copy(out, validMuscleGroups)
	return out
}

func IsValidMuscleGroup(name string) bool {
	_, ok := landmarks[name]
	return ok
}

// ValidateMuscleGroup fails with a ValidationError listing the valid names.
func ValidateMuscleGroup(name string) error {
	if IsValidMuscleGroup(name) {
		return nil
	}
	return apperr.Validation(
		"muscle_group",
		"Invalid muscle_group: %s. Valid options: %s",
		name, strings.Join(validMuscleGroups, ", "),
	)
}
