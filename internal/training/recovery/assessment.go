package recovery

import "time"

type Assessment struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`
	CheckIn
	Result
	Timestamp time.Time `json:"timestamp"`
}
