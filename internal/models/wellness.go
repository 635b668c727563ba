package models

import "time"

// WaterEntry is a single intake record. Negative amounts undo earlier entries.
type WaterEntry struct {
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

type WaterLogMap map[string][]WaterEntry

type SessionKind string

const (
	SessionSleep   SessionKind = "sleep"
	SessionFasting SessionKind = "fasting"
)

// Session is an open-ended interval. It is active until EndTime is set.
type Session struct {
	ID             string     `json:"id"`
	StartTime      time.Time  `json:"startTime"`
	EndTime        *time.Time `json:"endTime"`
	Duration       *float64   `json:"duration"`                 // minutes, set on end
	TargetDuration *int       `json:"targetDuration,omitempty"` // minutes, fasting only
}

func (s Session) Active() bool {
	return s.EndTime == nil
}

// Elapsed returns the session length, measured up to now while it is still open.
func (s Session) Elapsed(now time.Time) time.Duration {
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return now.Sub(s.StartTime)
}

// MoodEntry is the single mood record kept for a date
type MoodEntry struct {
	Mood      string    `json:"mood" validate:"nonblank"`
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

type MoodMap map[string]MoodEntry

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)
