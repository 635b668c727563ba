// Package stats derives streaks and aggregate statistics from the completion log.
// Every function is pure: callers load the collections and pass "today" explicitly.
package stats

import (
	"sort"

	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

// Streak holds the current and longest runs of consecutive completion days
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// CalculateStreak computes habitID's streaks from the log map as of today (YYYY-MM-DD)
func CalculateStreak(logs models.LogMap, habitID, today string) Streak {
	return StreakFromDates(logs.DatesFor(habitID), today)
}

// StreakFromDates computes streaks over a set of completion dates.
//
// The current streak counts back from the most recent date, which must be today
// or yesterday, while each step to the previous date is exactly one day. The
// longest streak is the longest such run anywhere, and never less than current.
// Unparseable dates are ignored.
func StreakFromDates(dates []string, today string) Streak {
	sorted := descending(dates)
	if len(sorted) == 0 {
		return Streak{}
	}

	current := 0
	for i, date := range sorted {
		if i == 0 {
			gap, err := utils.DaysApart(date, today)
			if err != nil || gap > 1 {
				break
			}
			current = 1
			continue
		}
		gap, _ := utils.DaysApart(date, sorted[i-1])
		if gap != 1 {
			break
		}
		current++
	}

	longest := 0
	run := 1
	for i := 0; i < len(sorted)-1; i++ {
		gap, _ := utils.DaysApart(sorted[i+1], sorted[i])
		if gap == 1 {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}
	longest = max(longest, run, current)

	return Streak{Current: current, Longest: longest}
}

// descending returns the valid, distinct dates newest first
func descending(dates []string) []string {
	seen := make(map[string]bool, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		if _, err := utils.ParseDate(d); err != nil {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	// ISO dates sort chronologically as strings
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
