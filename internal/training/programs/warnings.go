package programs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/2beens/fitflow/internal/training/volume"
)

// VolumeWarning checks the weekly planned sets of the touched muscle groups after a
// program edit. Adding volume warns above MRV, removing volume warns below MEV.
func VolumeWarning(planned map[string]int, muscleGroups []string, removing bool) *string {
	var warnings []string
	for _, g := range muscleGroups {
		lm := volume.LandmarksFor(g)
		if lm == (volume.Landmarks{}) {
			continue
		}
		sets := planned[g]
		if !removing && sets > lm.MRV {
			warnings = append(warnings, fmt.Sprintf("Adding this exercise will exceed MRV for %s (%d > %d)", g, sets, lm.MRV))
		}
		if removing && sets < lm.MEV {
			warnings = append(warnings, fmt.Sprintf("Removing this exercise will drop below MEV for %s (%d < %d)", g, sets, lm.MEV))
		}
	}
	if len(warnings) == 0 {
		return nil
	}
	w := strings.Join(warnings, "; ")
	return &w
}

// SwapWarning checks an exercise replacement. Groups only the new exercise trains are held
// against MRV, groups only the old one trained against MEV.
func SwapWarning(planned map[string]int, before, after []string) *string {
	var warnings []string
	if w := VolumeWarning(planned, without(after, before), false); w != nil {
		warnings = append(warnings, *w)
	}
	if w := VolumeWarning(planned, without(before, after), true); w != nil {
		warnings = append(warnings, *w)
	}
	if len(warnings) == 0 {
		return nil
	}
	w := strings.Join(warnings, "; ")
	return &w
}

func without(groups, remove []string) []string {
	var left []string
	for _, g := range groups {
		if !slices.Contains(remove, g) {
			left = append(left, g)
		}
	}
	return left
}
