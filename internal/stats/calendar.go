package stats

import (
	"fmt"
	"sort"

	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

// HeatLevels is the number of intensity tiers in the calendar heatmap
const HeatLevels = 5

// DailyStats returns one slot per day of month (YYYY-MM) holding the number of
// distinct habits completed that day. Days without a log entry are 0.
func DailyStats(logs models.LogMap, month string) ([]int, error) {
	days, err := utils.DaysInMonth(month)
	if err != nil {
		return nil, err
	}

	counts := make([]int, days)
	for day := 1; day <= days; day++ {
		counts[day-1] = distinct(logs[fmt.Sprintf("%s-%02d", month, day)])
	}
	return counts, nil
}

// HeatLevel buckets a day's completion count into a tier in [0, HeatLevels):
// 0, 1, 2, 3-4 and 5+.
func HeatLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 1
	case count == 2:
		return 2
	case count < 5:
		return 3
	default:
		return 4
	}
}

type MonthlySummary struct {
	Completions int `json:"completions"`
	ActiveDays  int `json:"activeDays"`
}

// SummarizeMonth totals completions in a month and counts the days with at least one
func SummarizeMonth(logs models.LogMap, month string) (MonthlySummary, error) {
	counts, err := DailyStats(logs, month)
	if err != nil {
		return MonthlySummary{}, err
	}

	var summary MonthlySummary
	for _, c := range counts {
		summary.Completions += c
		if c > 0 {
			summary.ActiveDays++
		}
	}
	return summary, nil
}

type HabitCount struct {
	Habit models.Habit `json:"habit"`
	Count int          `json:"count"`
}

// Breakdown counts each habit's completions in a month, dropping habits with none.
// Results are ordered by count, most completed first; ties keep habit order.
func Breakdown(habits []models.Habit, logs models.LogMap, month string) ([]HabitCount, error) {
	days, err := utils.DaysInMonth(month)
	if err != nil {
		return nil, err
	}

	var out []HabitCount
	for _, h := range habits {
		count := 0
		for day := 1; day <= days; day++ {
			if logs.Has(fmt.Sprintf("%s-%02d", month, day), h.ID) {
				count++
			}
		}
		if count > 0 {
			out = append(out, HabitCount{Habit: h, Count: count})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out, nil
}
