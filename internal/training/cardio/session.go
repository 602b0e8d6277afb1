// Package cardio tracks VO2max sessions: Norwegian 4x4 intervals and zone 2 work,
// each attached to a workout.
package cardio

import (
	"math"
	"time"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/training/workouts"
)

type Protocol string

const (
	ProtocolNorwegian4x4 Protocol = "norwegian_4x4"
	ProtocolZone2        Protocol = "zone2"
)

func (p Protocol) Valid() bool {
	return p == ProtocolNorwegian4x4 || p == ProtocolZone2
}

// stored form of the protocol
func (p Protocol) column() string {
	if p == ProtocolNorwegian4x4 {
		return "4x4"
	}
	return "zone2"
}

func protocolFromColumn(c string) Protocol {
	if c == "4x4" {
		return ProtocolNorwegian4x4
	}
	return ProtocolZone2
}

type CompletionStatus string

const (
	StatusCompleted  CompletionStatus = "completed"
	StatusIncomplete CompletionStatus = "incomplete"
)

func (s CompletionStatus) Valid() bool {
	return s == StatusCompleted || s == StatusIncomplete
}

const (
	MinDurationMinutes = 10
	MaxDurationMinutes = 120
	MinHeartRate       = 60
	MaxHeartRate       = 220
	MinVO2max          = 20.0
	MaxVO2max          = 80.0
	Intervals4x4       = 4
	MaxNotesLen        = 500

	DefaultListLimit = 50
	MaxListLimit     = 200

	// a zone 2 session counts as done from this duration on
	zone2CompletedMinutes = 45
)

type Session struct {
	ID                 int              `json:"id"`
	UserID             int              `json:"user_id"`
	WorkoutID          int              `json:"workout_id"`
	Date               string           `json:"date"`
	DurationMinutes    int              `json:"duration_minutes"`
	ProtocolType       Protocol         `json:"protocol_type"`
	AverageHeartRate   *int             `json:"average_heart_rate"`
	PeakHeartRate      *int             `json:"peak_heart_rate"`
	EstimatedVO2max    *float64         `json:"estimated_vo2max"`
	IntervalsCompleted *int             `json:"intervals_completed"`
	RPE                *int             `json:"rpe"`
	CompletionStatus   CompletionStatus `json:"completion_status"`
	Notes              *string          `json:"notes"`
	CreatedAt          time.Time        `json:"created_at"`
}

type CreateParams struct {
	WorkoutID          *int     `json:"workout_id,omitempty"`
	Date               string   `json:"date"`
	DurationMinutes    int      `json:"duration_minutes"`
	ProtocolType       Protocol `json:"protocol_type"`
	AverageHeartRate   *int     `json:"average_heart_rate,omitempty"`
	PeakHeartRate      *int     `json:"peak_heart_rate,omitempty"`
	EstimatedVO2max    *float64 `json:"estimated_vo2max,omitempty"`
	IntervalsCompleted *int     `json:"intervals_completed,omitempty"`
	RPE                *int     `json:"rpe,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
}

// Validate returns the session date. Without a workout the date is required,
// a new completed workout is created for it.
func (p CreateParams) Validate() (time.Time, error) {
	if !p.ProtocolType.Valid() {
		return time.Time{}, apperr.Validation("protocol_type", "protocol_type must be one of: norwegian_4x4, zone2")
	}
	if err := validateMetrics(p.ProtocolType, &p.DurationMinutes, p.AverageHeartRate, p.PeakHeartRate, p.EstimatedVO2max, p.IntervalsCompleted, p.RPE, p.Notes); err != nil {
		return time.Time{}, err
	}

	if p.WorkoutID != nil {
		if *p.WorkoutID <= 0 {
			return time.Time{}, apperr.Validation("workout_id", "Invalid workout_id")
		}
		if p.Date == "" {
			return time.Time{}, nil
		}
	}
	return workouts.ParseDate("date", p.Date)
}

func validateMetrics(protocol Protocol, duration, avgHR, peakHR *int, vo2max *float64, intervals, rpe *int, notes *string) error {
	if duration != nil && (*duration < MinDurationMinutes || *duration > MaxDurationMinutes) {
		return apperr.Validation("duration_minutes", "Duration must be between %d and %d minutes", MinDurationMinutes, MaxDurationMinutes)
	}
	if avgHR != nil && (*avgHR < MinHeartRate || *avgHR > MaxHeartRate) {
		return apperr.Validation("average_heart_rate", "Average heart rate must be between %d and %d bpm", MinHeartRate, MaxHeartRate)
	}
	if peakHR != nil && (*peakHR < MinHeartRate || *peakHR > MaxHeartRate) {
		return apperr.Validation("peak_heart_rate", "Peak heart rate must be between %d and %d bpm", MinHeartRate, MaxHeartRate)
	}
	if vo2max != nil && (*vo2max < MinVO2max || *vo2max > MaxVO2max) {
		return apperr.Validation("estimated_vo2max", "Estimated VO2max must be between 20.0 and 80.0 ml/kg/min")
	}
	if intervals != nil {
		if *intervals < 0 || *intervals > Intervals4x4 {
			return apperr.Validation("intervals_completed", "Norwegian 4x4 protocol allows 0-4 intervals")
		}
		if protocol == ProtocolZone2 {
			return apperr.Validation("intervals_completed", "intervals_completed only applies to norwegian_4x4")
		}
	}
	if rpe != nil && (*rpe < 1 || *rpe > 10) {
		return apperr.Validation("rpe", "RPE must be between 1 and 10")
	}
	if notes != nil && len(*notes) > MaxNotesLen {
		return apperr.Validation("notes", "Notes must be at most %d characters", MaxNotesLen)
	}
	return nil
}

// UnusualDuration describes a duration outside the usual range of the protocol,
// empty when the duration is typical.
func UnusualDuration(protocol Protocol, minutes int) string {
	switch {
	case protocol == ProtocolNorwegian4x4 && (minutes < 20 || minutes > 40):
		return "norwegian 4x4 usually takes 28-32 minutes"
	case protocol == ProtocolZone2 && minutes < 30:
		return "zone 2 sessions usually take 45-120 minutes"
	}
	return ""
}

// Completion marks a 4x4 session done when all intervals are in, a zone 2 session
// when it lasted long enough.
func Completion(protocol Protocol, minutes int, intervals *int) CompletionStatus {
	if protocol == ProtocolNorwegian4x4 {
		if intervals != nil && *intervals == Intervals4x4 {
			return StatusCompleted
		}
		return StatusIncomplete
	}
	if minutes >= zone2CompletedMinutes {
		return StatusCompleted
	}
	return StatusIncomplete
}

// EstimateVO2max applies the heart rate ratio method, 15.3 * HRmax / HRrest, with
// HRmax = 220 - age and a resting rate of 60 bpm. The result is clamped to 20-80 ml/kg/min.
func EstimateVO2max(age int) float64 {
	const restingHR = 60.0
	maxHR := float64(220 - age)
	vo2max := 15.3 * (maxHR / restingHR)
	return math.Round(math.Max(MinVO2max, math.Min(MaxVO2max, vo2max))*10) / 10
}

type SessionUpdate struct {
	DurationMinutes    *int              `json:"duration_minutes,omitempty"`
	AverageHeartRate   *int              `json:"average_heart_rate,omitempty"`
	PeakHeartRate      *int              `json:"peak_heart_rate,omitempty"`
	EstimatedVO2max    *float64          `json:"estimated_vo2max,omitempty"`
	IntervalsCompleted *int              `json:"intervals_completed,omitempty"`
	RPE                *int              `json:"rpe,omitempty"`
	Notes              *string           `json:"notes,omitempty"`
	CompletionStatus   *CompletionStatus `json:"completion_status,omitempty"`
}

func (u SessionUpdate) Empty() bool {
	return u.DurationMinutes == nil && u.AverageHeartRate == nil && u.PeakHeartRate == nil &&
		u.EstimatedVO2max == nil && u.IntervalsCompleted == nil && u.RPE == nil &&
		u.Notes == nil && u.CompletionStatus == nil
}

func (u SessionUpdate) Validate(protocol Protocol) error {
	if u.CompletionStatus != nil && !u.CompletionStatus.Valid() {
		return apperr.Validation("completion_status", "completion_status must be one of: completed, incomplete")
	}
	return validateMetrics(protocol, u.DurationMinutes, u.AverageHeartRate, u.PeakHeartRate, u.EstimatedVO2max, u.IntervalsCompleted, u.RPE, u.Notes)
}

// ListQuery is the raw filter of a list request.
type ListQuery struct {
	StartDate    string
	EndDate      string
	ProtocolType string
	Limit        int
	Offset       int
}

// Params validates the query into a repo filter.
func (q ListQuery) Params() (ListParams, error) {
	params := ListParams{Limit: ClampLimit(q.Limit), Offset: q.Offset}
	if q.Offset < 0 {
		return ListParams{}, apperr.Validation("offset", "offset must not be negative")
	}
	var err error
	if params.StartDate, params.EndDate, err = parseRange(q.StartDate, q.EndDate); err != nil {
		return ListParams{}, err
	}
	if q.ProtocolType != "" {
		protocol := Protocol(q.ProtocolType)
		if !protocol.Valid() {
			return ListParams{}, apperr.Validation("protocol_type", "protocol_type must be one of: norwegian_4x4, zone2")
		}
		params.Protocol = &protocol
	}
	return params, nil
}

func parseRange(start, end string) (from, to *time.Time, err error) {
	if start != "" {
		d, err := workouts.ParseDate("start_date", start)
		if err != nil {
			return nil, nil, err
		}
		from = &d
	}
	if end != "" {
		d, err := workouts.ParseDate("end_date", end)
		if err != nil {
			return nil, nil, err
		}
		to = &d
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, apperr.Validation("start_date", "start_date must not be after end_date")
	}
	return from, to, nil
}

type ListParams struct {
	StartDate *time.Time
	EndDate   *time.Time
	Protocol  *Protocol
	Limit     int
	Offset    int
}

type ListResult struct {
	Sessions []Session `json:"sessions"`
	Count    int       `json:"count"`
	HasMore  bool      `json:"has_more"`
}

type CreateResult struct {
	SessionID        int              `json:"session_id"`
	EstimatedVO2max  *float64         `json:"estimated_vo2max"`
	CompletionStatus CompletionStatus `json:"completion_status"`
}

type ProgressionPoint struct {
	Date            string   `json:"date"`
	EstimatedVO2max float64  `json:"estimated_vo2max"`
	ProtocolType    Protocol `json:"protocol_type"`
}

// ClampLimit maps a requested page size into [1, MaxListLimit], zero meaning the default.
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
