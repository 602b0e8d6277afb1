package bodyweight

import (
	"math"
	"time"

	"github.com/2beens/fitflow/internal/apperr"
)

const (
	DateLayout = "2006-01-02"

	MinWeightKg = 30.0
	MaxWeightKg = 300.0
	MaxNotesLen = 500

	DefaultListLimit = 30
	MaxListLimit     = 365
)

type Entry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	WeightKg  float64   `json:"weight_kg"`
	Date      string    `json:"date"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type LogParams struct {
	WeightKg float64 `json:"weight_kg"`
	Date     string  `json:"date,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// Validate checks the params against today's date and returns the entry date,
// which defaults to today.
func (p LogParams) Validate(today time.Time) (time.Time, error) {
	if p.WeightKg < MinWeightKg || p.WeightKg > MaxWeightKg {
		return time.Time{}, apperr.Validation("weight_kg", "Weight must be between 30kg and 300kg")
	}
	if p.Notes != nil && len(*p.Notes) > MaxNotesLen {
		return time.Time{}, apperr.Validation("notes", "Notes must be at most %d characters", MaxNotesLen)
	}

	today = truncateDay(today)
	if p.Date == "" {
		return today, nil
	}
	date, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return time.Time{}, apperr.Validation("date", "Invalid date. Expected YYYY-MM-DD")
	}
	if date.After(today) {
		return time.Time{}, apperr.Validation("date", "Date cannot be in the future")
	}
	return date, nil
}

// ClampLimit maps a requested history size into [1, MaxListLimit],
// zero meaning the default.
func ClampLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultListLimit
	case limit < 1:
		return 1
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}

type WeightChange struct {
	WeightChangeKg   float64 `json:"weight_change_kg"`
	PercentageChange float64 `json:"percentage_change"`
}

// Change compares the latest weight with a previous one.
func Change(latest, previous float64) *WeightChange {
	if previous <= 0 {
		return nil
	}
	diff := latest - previous
	return &WeightChange{
		WeightChangeKg:   round2(diff),
		PercentageChange: round2(diff / previous * 100),
	}
}

type Summary struct {
	Latest      *Entry        `json:"latest"`
	WeekChange  *WeightChange `json:"week_change"`
	MonthChange *WeightChange `json:"month_change"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
