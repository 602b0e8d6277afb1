package volume

import (
	"sort"
	"time"
)

// SetCount is the number of completed sets a muscle group received on a workout date.
type SetCount struct {
	Date        time.Time
	MuscleGroup string
	Sets        int
}

type GroupVolume struct {
	MuscleGroup   string `json:"muscle_group"`
	CompletedSets int    `json:"completed_sets"`
	Landmarks
}

type WeekVolume struct {
	WeekStart    string        `json:"week_start"`
	MuscleGroups []GroupVolume `json:"muscle_groups"`
}

type WeekTotal struct {
	Week      string `json:"week"`
	TotalSets int    `json:"total_sets"`
	Landmarks
}

func bucketByWeek(counts []SetCount) map[time.Time]map[string]int {
	byWeek := make(map[time.Time]map[string]int)
	for _, c := range counts {
		w := WeekStart(c.Date)
		if byWeek[w] == nil {
			byWeek[w] = make(map[string]int)
		}
		byWeek[w][c.MuscleGroup] += c.Sets
	}
	return byWeek
}

// Weekly groups set counts by ISO week and muscle group over [from, to]. Every week in the
// range is present. With a muscle group filter each week carries exactly that group, at 0
// when nothing was logged; counts for other groups are dropped.
func Weekly(counts []SetCount, from, to time.Time, muscleGroup string) []WeekVolume {
	byWeek := bucketByWeek(counts)

	weeks := make([]WeekVolume, 0)
	for _, start := range WeekStarts(from, to) {
		groups := byWeek[start]
		week := WeekVolume{
			WeekStart:    start.Format(DateLayout),
			MuscleGroups: make([]GroupVolume, 0, len(groups)),
		}

		if muscleGroup != "" {
			week.MuscleGroups = append(week.MuscleGroups, GroupVolume{
				MuscleGroup:   muscleGroup,
				CompletedSets: groups[muscleGroup],
				Landmarks:     LandmarksFor(muscleGroup),
			})
			weeks = append(weeks, week)
			continue
		}

		for group, sets := range groups {
			week.MuscleGroups = append(week.MuscleGroups, GroupVolume{
				MuscleGroup:   group,
				CompletedSets: sets,
				Landmarks:     LandmarksFor(group),
			})
		}
		sort.Slice(week.MuscleGroups, func(i, j int) bool {
			return week.MuscleGroups[i].MuscleGroup < week.MuscleGroups[j].MuscleGroup
		})
		weeks = append(weeks, week)
	}

	return weeks
}

// WeeklyTotals is Weekly for a single muscle group, flattened to one row per week.
func WeeklyTotals(counts []SetCount, from, to time.Time, muscleGroup string) []WeekTotal {
	lm := LandmarksFor(muscleGroup)
	totals := make([]WeekTotal, 0)
	for _, w := range Weekly(counts, from, to, muscleGroup) {
		totals = append(totals, WeekTotal{
			Week:      w.WeekStart,
			TotalSets: w.MuscleGroups[0].CompletedSets,
			Landmarks: lm,
		})
	}
	return totals
}

type GroupProgress struct {
	MuscleGroup          string  `json:"muscle_group"`
	CompletedSets        int     `json:"completed_sets"`
	PlannedSets          int     `json:"planned_sets"`
	RemainingSets        int     `json:"remaining_sets"`
	CompletionPercentage float64 `json:"completion_percentage"`
	Zone                 Zone    `json:"zone"`
	Warning              *string `json:"warning"`
	Landmarks
}

type CurrentWeek struct {
	WeekStart    string          `json:"week_start"`
	WeekEnd      string          `json:"week_end"`
	MuscleGroups []GroupProgress `json:"muscle_groups"`
}

// Progress merges this week's completed sets with the planned weekly sets, per muscle group.
// A group shows up when it has either completed or planned sets.
func Progress(now time.Time, completed, planned map[string]int) CurrentWeek {
	monday, sunday := WeekBounds(now)

	groups := make(map[string]struct{}, len(completed)+len(planned))
	for g := range completed {
		groups[g] = struct{}{}
	}
	for g := range planned {
		groups[g] = struct{}{}
	}

	progress := make([]GroupProgress, 0, len(groups))
	for g := range groups {
		done, plan := completed[g], planned[g]
		lm := LandmarksFor(g)
		zone := ClassifyProgress(done, plan, lm)
		progress = append(progress, GroupProgress{
			MuscleGroup:          g,
			CompletedSets:        done,
			PlannedSets:          plan,
			RemainingSets:        max(0, plan-done),
			CompletionPercentage: CompletionPercentage(done, plan),
			Zone:                 zone,
			Warning:              Warning(g, zone),
			Landmarks:            lm,
		})
	}
	sort.Slice(progress, func(i, j int) bool {
		return progress[i].MuscleGroup < progress[j].MuscleGroup
	})

	return CurrentWeek{
		WeekStart:    monday.Format(DateLayout),
		WeekEnd:      sunday.Format(DateLayout),
		MuscleGroups: progress,
	}
}

type PlannedGroup struct {
	MuscleGroup       string  `json:"muscle_group"`
	PlannedWeeklySets int     `json:"planned_weekly_sets"`
	Zone              Zone    `json:"zone"`
	Warning           *string `json:"warning"`
	Landmarks
}

// AnalyzePlan classifies the weekly sets a program plans per muscle group.
func AnalyzePlan(planned map[string]int) []PlannedGroup {
	groups := make([]PlannedGroup, 0, len(planned))
	for g, sets := range planned {
		lm := LandmarksFor(g)
		zone := ClassifyZone(sets, lm)
		groups = append(groups, PlannedGroup{
			MuscleGroup:       g,
			PlannedWeeklySets: sets,
			Zone:              zone,
			Warning:           Warning(g, zone),
			Landmarks:         lm,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].MuscleGroup < groups[j].MuscleGroup
	})
	return groups
}
