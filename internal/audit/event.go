// Package audit keeps a security trail of account events: registrations, logins,
// logouts and account deletions.
package audit

import (
	"context"
	"time"
)

// EventType can be one of:
//   - auth_register
//   - auth_login
//   - auth_logout
//   - account_deletion
type EventType string

const (
	EventTypeRegister        EventType = "auth_register"
	EventTypeLogin           EventType = "auth_login"
	EventTypeLogout          EventType = "auth_logout"
	EventTypeAccountDeletion EventType = "account_deletion"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeRegister,
		EventTypeLogin,
		EventTypeLogout,
		EventTypeAccountDeletion:
		return true
	default:
		return false
	}
}

// Event rows are kept after the user is deleted, user_id is not a foreign key.
type Event struct {
	ID        int               `json:"id"`
	UserID    int               `json:"user_id"`
	Type      EventType         `json:"event_type"`
	IPAddress string            `json:"ip_address"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"details,omitempty"`
}

const unknownIP = "unknown"

// NewEvent stamps an event with the client IP carried by ctx.
func NewEvent(ctx context.Context, userID int, eventType EventType, data map[string]string) Event {
	return Event{
		UserID:    userID,
		Type:      eventType,
		IPAddress: ClientIP(ctx),
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type clientIPKey struct{}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok && ip != "" {
		return ip
	}
	return unknownIP
}
