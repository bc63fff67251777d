package models

import (
	"fmt"
	"time"
)

// SessionStatus is the lifecycle state of a fasting session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Terminal returns true once a session can no longer change state.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionCancelled
}

// FastingSession is a single bounded fast for one user. All timestamps are
// UTC milliseconds. Exactly one active session may exist per user; the
// storage layer enforces this with a partial unique index.
type FastingSession struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	Protocol     string        `json:"protocol"`
	Status       SessionStatus `json:"status"`
	StartedAt    int64         `json:"started_at"`
	TargetEndAt  int64         `json:"target_end_at"`
	ActualEndAt  *int64        `json:"actual_end_at,omitempty"` // set iff status is terminal
	FastingHours float64       `json:"fasting_hours"`
	WaterCount   int           `json:"water_count"`
}

// IsActive reports whether the session is still running.
func (s *FastingSession) IsActive() bool {
	return s.Status == SessionActive
}

// IsElapsed reports whether the fast has reached its target end. This is
// the completion-eligibility predicate: an elapsed active session may be
// finalized to completed.
func (s *FastingSession) IsElapsed(now time.Time) bool {
	return now.UnixMilli() >= s.TargetEndAt
}

// Progress returns the elapsed fraction of the fast, clamped to [0, 1].
func (s *FastingSession) Progress(now time.Time) float64 {
	total := s.TargetEndAt - s.StartedAt
	if total <= 0 {
		return 1
	}
	frac := float64(now.UnixMilli()-s.StartedAt) / float64(total)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

// Remaining returns the time left until the target end, or zero if the
// fast has elapsed.
func (s *FastingSession) Remaining(now time.Time) time.Duration {
	rem := time.Duration(s.TargetEndAt-now.UnixMilli()) * time.Millisecond
	if rem < 0 {
		return 0
	}
	return rem
}

// Protocol is a named fasting schedule selected at start time.
type Protocol struct {
	Name  string `json:"name"`
	Hours int    `json:"hours"`
}

// BuiltinProtocols lists the fasting schedules offered by default, shortest
// first. "16:8" means 16 fasting hours and an 8 hour eating window.
var BuiltinProtocols = []Protocol{
	{Name: "13:11", Hours: 13},
	{Name: "16:8", Hours: 16},
	{Name: "18:6", Hours: 18},
	{Name: "20:4", Hours: 20},
	{Name: "36h", Hours: 36},
}

// ProtocolByName looks up a builtin protocol.
func ProtocolByName(name string) (Protocol, bool) {
	for _, p := range BuiltinProtocols {
		if p.Name == name {
			return p, true
		}
	}
	return Protocol{}, false
}

// CustomProtocol builds an ad-hoc protocol for a user-chosen duration.
func CustomProtocol(hours int) Protocol {
	return Protocol{Name: fmt.Sprintf("custom-%dh", hours), Hours: hours}
}
