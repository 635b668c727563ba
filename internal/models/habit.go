package models

import (
	"slices"
	"time"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
)

// Habit represents a recurring activity tracked by completion date
type Habit struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"nonblank"`
	Icon      string    `json:"icon"`
	Frequency Frequency `json:"frequency" validate:"oneof=Daily Weekly Monthly"`
	Time      *string   `json:"time,omitempty" validate:"omitempty,timeofday"`
	CreatedAt time.Time `json:"createdAt"`
}

// HabitPatch holds the fields to merge into an existing habit. Nil fields are left untouched.
type HabitPatch struct {
	Title     *string
	Icon      *string
	Frequency *Frequency
	Time      *string
}

// Apply returns a copy of h with the non-nil patch fields merged in.
// An empty Time clears the habit's reminder time.
func (p HabitPatch) Apply(h Habit) Habit {
	if p.Title != nil {
		h.Title = *p.Title
	}
	if p.Icon != nil {
		h.Icon = *p.Icon
	}
	if p.Frequency != nil {
		h.Frequency = *p.Frequency
	}
	if p.Time != nil {
		if *p.Time == "" {
			h.Time = nil
		} else {
			t := *p.Time
			h.Time = &t
		}
	}
	return h
}

// LogMap maps a local calendar date (YYYY-MM-DD) to the ids of habits completed that day.
type LogMap map[string][]string

// Has reports whether habitID is recorded on date.
func (l LogMap) Has(date, habitID string) bool {
	return slices.Contains(l[date], habitID)
}

// Add records habitID on date. It returns false when the id was already present.
func (l LogMap) Add(date, habitID string) bool {
	if l.Has(date, habitID) {
		return false
	}
	l[date] = append(l[date], habitID)
	return true
}

// Remove drops habitID from date. It returns false when nothing was removed.
func (l LogMap) Remove(date, habitID string) bool {
	ids, ok := l[date]
	if !ok {
		return false
	}
	filtered := slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == habitID })
	if len(filtered) == len(ids) {
		return false
	}
	l[date] = filtered
	return true
}

// DatesFor returns every date on which habitID was completed, in no particular order.
func (l LogMap) DatesFor(habitID string) []string {
	var dates []string
	for date, ids := range l {
		if slices.Contains(ids, habitID) {
			dates = append(dates, date)
		}
	}
	return dates
}
