package programs

import "time"

const DefaultProgramName = "Renaissance Periodization 6-Day Split"

type templateExercise struct {
	name string
	sets int
	reps string
	rir  int
}

type templateDay struct {
	dayOfWeek int
	name      string
	dayType   DayType
	exercises []templateExercise
}

// defaultTemplate is the 6 day split every new account starts with. Exercises are
// matched by name against the seeded library.
var defaultTemplate = []templateDay{
	{1, "Push A (Chest-Focused)", DayTypeStrength, []templateExercise{
		{"Barbell Back Squat", 3, "6-8", 3},
		{"Barbell Bench Press", 4, "6-8", 3},
		{"Incline Dumbbell Press", 3, "8-10", 2},
		{"Cable Flyes", 3, "12-15", 1},
		{"Lateral Raises", 4, "12-15", 1},
		{"Tricep Pushdown", 3, "15-20", 0},
	}},
	{2, "Pull A (Lat-Focused)", DayTypeStrength, []templateExercise{
		{"Conventional Deadlift", 3, "5-8", 3},
		{"Pull-Ups", 4, "5-8", 3},
		{"Barbell Row", 4, "8-10", 2},
		{"Seated Cable Row", 3, "12-15", 1},
		{"Face Pulls", 3, "15-20", 0},
		{"Barbell Curl", 3, "8-12", 1},
	}},
	{3, "VO2max A (Norwegian 4x4)", DayTypeVO2Max, nil},
	{4, "Push B (Shoulder-Focused)", DayTypeStrength, []templateExercise{
		{"Leg Press", 3, "8-12", 3},
		{"Overhead Press", 4, "5-8", 3},
		{"Dumbbell Bench Press", 3, "8-12", 2},
		{"Cable Lateral Raises", 4, "15-20", 0},
		{"Rear Delt Flyes", 3, "15-20", 0},
		{"Close-Grip Bench Press", 3, "8-10", 2},
	}},
	{5, "Pull B (Rhomboid/Trap-Focused)", DayTypeStrength, []templateExercise{
		{"Front Squat", 3, "6-8", 3},
		{"Barbell Row", 4, "6-8", 3},
		{"Lat Pulldown", 3, "10-12", 2},
		{"Barbell Shrugs", 4, "12-15", 1},
		{"Rear Delt Flyes", 3, "15-20", 0},
		{"Hammer Curl", 3, "10-15", 1},
	}},
	{6, "VO2max B (30/30 or Zone 2)", DayTypeVO2Max, nil},
}

// DefaultExerciseNames lists the library exercises the default program needs.
func DefaultExerciseNames() []string {
	return templateExerciseNames()
}

func templateExerciseNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, d := range defaultTemplate {
		for _, e := range d.exercises {
			if !seen[e.name] {
				seen[e.name] = true
				names = append(names, e.name)
			}
		}
	}
	return names
}

// templateDayIndexFor picks the template day trained on the given date.
// Sunday falls back to the Saturday session.
func templateDayIndexFor(date time.Time) int {
	wd := date.Weekday()
	if wd == time.Sunday {
		return len(defaultTemplate) - 1
	}
	return int(wd) - 1
}
