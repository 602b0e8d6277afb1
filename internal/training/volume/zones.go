package volume

import (
	"fmt"
	"math"
)

type Zone string

const (
	ZoneBelowMEV Zone = "below_mev"
	ZoneAdequate Zone = "adequate"
	ZoneOptimal  Zone = "optimal"
	ZoneAboveMRV Zone = "above_mrv"
	ZoneOnTrack  Zone = "on_track"
)

// ClassifyZone places a weekly set count relative to the landmarks.
func ClassifyZone(sets int, lm Landmarks) Zone {
	switch {
	case sets < lm.MEV:
		return ZoneBelowMEV
	case sets < lm.MAV:
		return ZoneAdequate
	case sets <= lm.MRV:
		return ZoneOptimal
	default:
		return ZoneAboveMRV
	}
}

// ClassifyProgress is ClassifyZone for a week in progress: when the plan itself lands
// between MEV and MRV and at least half of it is done, the group is on track.
func ClassifyProgress(completed, planned int, lm Landmarks) Zone {
	halfDone := float64(completed) >= float64(planned)*0.5
	if halfDone && planned >= lm.MAV && planned <= lm.MRV {
		return ZoneOnTrack
	}
	if halfDone && planned >= lm.MEV && planned < lm.MAV {
		return ZoneOnTrack
	}
	return ClassifyZone(completed, lm)
}

// Warning returns the user facing warning for a zone, nil when there is nothing to warn about.
func Warning(muscleGroup string, zone Zone) *string {
	var msg string
	switch zone {
	case ZoneBelowMEV:
		msg = fmt.Sprintf("%s volume is below minimum effective volume (MEV). Increase sets for growth.", muscleGroup)
	case ZoneAboveMRV:
		msg = fmt.Sprintf("%s volume exceeds maximum recoverable volume (MRV). Risk of overtraining.", muscleGroup)
	default:
		return nil
	}
	return &msg
}

// CompletionPercentage is completed/planned in percent, one decimal, 0 without a plan.
func CompletionPercentage(completed, planned int) float64 {
	if planned <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(planned)*100*10) / 10
}
