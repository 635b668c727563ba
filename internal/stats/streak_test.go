package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/streaklit/internal/models"
)

const today = "2026-10-15"

func TestStreakFromDates(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  Streak
	}{
		{"no completions", nil, Streak{}},
		{"only today", []string{"2026-10-15"}, Streak{Current: 1, Longest: 1}},
		{"only yesterday", []string{"2026-10-14"}, Streak{Current: 1, Longest: 1}},
		{"two days ago", []string{"2026-10-13"}, Streak{Current: 0, Longest: 1}},
		{
			"three consecutive ending today",
			[]string{"2026-10-15", "2026-10-14", "2026-10-13"},
			Streak{Current: 3, Longest: 3},
		},
		{
			"gap of two breaks current",
			[]string{"2026-10-15", "2026-10-13"},
			Streak{Current: 1, Longest: 1},
		},
		{
			"longest in the past",
			[]string{"2026-10-15", "2026-10-01", "2026-09-30", "2026-09-29", "2026-09-28"},
			Streak{Current: 1, Longest: 4},
		},
		{
			"current run ending yesterday is longest",
			[]string{"2026-10-14", "2026-10-13", "2026-10-12", "2026-10-01", "2026-09-30"},
			Streak{Current: 3, Longest: 3},
		},
		{
			"unsorted input across a month boundary",
			[]string{"2026-10-01", "2026-09-29", "2026-09-30"},
			Streak{Current: 0, Longest: 3},
		},
		{
			"malformed dates are ignored",
			[]string{"2026-10-15", "not-a-date", "2026-10-14"},
			Streak{Current: 2, Longest: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StreakFromDates(tt.dates, today))
		})
	}
}

func TestCalculateStreakUsesHabitID(t *testing.T) {
	logs := models.LogMap{
		"2026-10-15": {"read", "run"},
		"2026-10-14": {"read"},
		"2026-10-13": {"run"},
	}

	assert.Equal(t, Streak{Current: 2, Longest: 2}, CalculateStreak(logs, "read", today))
	assert.Equal(t, Streak{Current: 1, Longest: 1}, CalculateStreak(logs, "run", today))
	assert.Equal(t, Streak{}, CalculateStreak(logs, "meditate", today))
	assert.Equal(t, Streak{}, CalculateStreak(models.LogMap{}, "read", today))
}
