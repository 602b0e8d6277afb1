package auth

import "time"

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

type User struct {
	ID              int              `json:"id"`
	Username        string           `json:"username"`
	PasswordHash    string           `json:"-"`
	Age             *int             `json:"age,omitempty"`
	WeightKg        *float64         `json:"weight_kg,omitempty"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterParams struct {
	Credentials
	Age             *int             `json:"age,omitempty"`
	WeightKg        *float64         `json:"weight_kg,omitempty"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty"`
}

// ProfileUpdate changes only the fields that are set.
type ProfileUpdate struct {
	Age             *int             `json:"age,omitempty"`
	WeightKg        *float64         `json:"weight_kg,omitempty"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty"`
}

func (u ProfileUpdate) Empty() bool {
	return u.Age == nil && u.WeightKg == nil && u.ExperienceLevel == nil
}
