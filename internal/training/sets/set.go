package sets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const (
	MaxWeightKg    = 500
	MinReps        = 1
	MaxReps        = 50
	MinRIR         = 0
	MaxRIR         = 4
	MaxNotesLength = 500
	maxLocalIDLen  = 64
)

// LocalID is the id the mobile client assigns to a set before it is synced.
// Clients send it either as a JSON number or a string, and get it back the same way.
// 0 and "" carry no identity and are dropped while decoding.
type LocalID struct {
	value   string
	numeric bool
}

func StringLocalID(s string) LocalID {
	return LocalID{value: s}
}

func NumericLocalID(n int64) LocalID {
	return LocalID{value: strconv.FormatInt(n, 10), numeric: true}
}

func (id LocalID) String() string {
	return id.value
}

func (id LocalID) IsNumeric() bool {
	return id.numeric
}

// IsZero reports whether the id is one a client sends when it has none.
func (id LocalID) IsZero() bool {
	return id.value == "" || (id.numeric && id.value == "0")
}

func (id LocalID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *LocalID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = LocalID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringLocalID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("localId must be a string or a number: %w", err)
	}
	parsed, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("localId must be an integer: %w", err)
	}
	*id = NumericLocalID(parsed)
	return nil
}

type Set struct {
	ID             int       `json:"id"`
	WorkoutID      int       `json:"workout_id"`
	ExerciseID     int       `json:"exercise_id"`
	SetNumber      int       `json:"set_number"`
	WeightKg       float64   `json:"weight_kg"`
	Reps           int       `json:"reps"`
	RIR            int       `json:"rir"`
	Timestamp      time.Time `json:"timestamp"`
	LocalID        *LocalID  `json:"localId"`
	Notes          *string   `json:"notes"`
	Synced         bool      `json:"synced"`
	EstimatedOneRM float64   `json:"estimated_1rm"`
}

type LogParams struct {
	WorkoutID  int        `json:"workout_id"`
	ExerciseID int        `json:"exercise_id"`
	SetNumber  *int       `json:"set_number,omitempty"`
	WeightKg   float64    `json:"weight_kg"`
	Reps       int        `json:"reps"`
	RIR        int        `json:"rir"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
	LocalID    *LocalID   `json:"localId,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

func (p *LogParams) UnmarshalJSON(data []byte) error {
	type plain LogParams
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.LocalID != nil && decoded.LocalID.IsZero() {
		decoded.LocalID = nil
	}
	*p = LogParams(decoded)
	return nil
}

type LogResponse struct {
	ID             int      `json:"id"`
	LocalID        *LocalID `json:"localId"`
	Synced         bool     `json:"synced"`
	EstimatedOneRM float64  `json:"estimated_1rm"`
	WeightKg       float64  `json:"weight_kg"`
	Reps           int      `json:"reps"`
	RIR            int      `json:"rir"`
}

func (s *Set) LogResponse() LogResponse {
	return LogResponse{
		ID:             s.ID,
		LocalID:        s.LocalID,
		Synced:         s.Synced,
		EstimatedOneRM: oneRepMax(s.WeightKg, s.Reps, s.RIR),
		WeightKg:       s.WeightKg,
		Reps:           s.Reps,
		RIR:            s.RIR,
	}
}
