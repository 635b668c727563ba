package tracker

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/validation"
)

func ptr[T any](v T) *T { return &v }

func TestCreateHabitAssignsIDAndCreatedAt(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateHabit(models.Habit{Title: "  Read  ", Icon: "book"})
	require.NoError(t, err)

	assert.Equal(t, strconv.FormatInt(fixedNow.UnixMilli(), 10), created.ID)
	assert.True(t, created.CreatedAt.Equal(fixedNow))
	assert.Equal(t, "Read", created.Title)
	assert.Equal(t, models.FrequencyDaily, created.Frequency)

	habits := svc.ListHabits()
	require.Len(t, habits, 1)
	if diff := cmp.Diff(created.ID, habits[0].ID); diff != "" {
		t.Errorf("stored habit mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, habits[0].CreatedAt.Equal(fixedNow))
}

func TestCreateHabitBumpsCollidingIDs(t *testing.T) {
	svc, _, _ := newTestService(t)

	first, err := svc.CreateHabit(models.Habit{Title: "Read"})
	require.NoError(t, err)
	second, err := svc.CreateHabit(models.Habit{Title: "Run"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, strconv.FormatInt(fixedNow.UnixMilli()+1, 10), second.ID)
}

func TestCreateHabitKeepsGivenID(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateHabit(models.Habit{ID: "custom", Title: "Read"})
	require.NoError(t, err)
	assert.Equal(t, "custom", created.ID)

	_, err = svc.CreateHabit(models.Habit{ID: "custom", Title: "Again"})
	assert.ErrorIs(t, err, ErrDuplicateHabitID)
	assert.Len(t, svc.ListHabits(), 1)
}

func TestCreateHabitValidation(t *testing.T) {
	tests := []struct {
		name  string
		habit models.Habit
	}{
		{"blank title", models.Habit{Title: "   "}},
		{"bad frequency", models.Habit{Title: "Read", Frequency: "Hourly"}},
		{"bad time", models.Habit{Title: "Read", Time: ptr("25:99")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, adapter, _ := newTestService(t)

			_, err := svc.CreateHabit(tt.habit)
			require.ErrorIs(t, err, validation.ErrInvalid)

			_, rawErr := adapter.Raw(constants.KeyHabits)
			assert.Error(t, rawErr, "nothing should be written on validation failure")
		})
	}
}

func TestUpdateHabit(t *testing.T) {
	svc, _, _ := newTestService(t)
	created, err := svc.CreateHabit(models.Habit{Title: "Read", Time: ptr("07:00")})
	require.NoError(t, err)

	weekly := models.FrequencyWeekly
	updated, err := svc.UpdateHabit(created.ID, models.HabitPatch{
		Title:     ptr("Read more"),
		Frequency: &weekly,
		Time:      ptr(""),
	})
	require.NoError(t, err)

	assert.Equal(t, "Read more", updated.Title)
	assert.Equal(t, models.FrequencyWeekly, updated.Frequency)
	assert.Nil(t, updated.Time)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	got, err := svc.GetHabit(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Read more", got.Title)
}

func TestUpdateHabitUnknownIDLeavesStoreUnchanged(t *testing.T) {
	svc, _, _ := newTestService(t)
	created, err := svc.CreateHabit(models.Habit{Title: "Read"})
	require.NoError(t, err)
	before := svc.ListHabits()

	_, err = svc.UpdateHabit("missing", models.HabitPatch{Title: ptr("Other")})
	assert.ErrorIs(t, err, ErrHabitNotFound)

	_, err = svc.UpdateHabit(created.ID, models.HabitPatch{Title: ptr("")})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	if diff := cmp.Diff(before, svc.ListHabits()); diff != "" {
		t.Errorf("habits changed (-before +after):\n%s", diff)
	}
}

func TestDeleteHabitRetainsOrphanLogs(t *testing.T) {
	svc, _, _ := newTestService(t)
	read, err := svc.CreateHabit(models.Habit{Title: "Read"})
	require.NoError(t, err)
	run, err := svc.CreateHabit(models.Habit{Title: "Run"})
	require.NoError(t, err)

	require.NoError(t, svc.LogHabitCompletion(read.ID, ""))
	require.NoError(t, svc.LogHabitCompletion(read.ID, "2026-10-14"))
	require.NoError(t, svc.LogHabitCompletion(run.ID, ""))

	require.NoError(t, svc.DeleteHabit(read.ID))

	habits := svc.ListHabits()
	require.Len(t, habits, 1)
	assert.Equal(t, run.ID, habits[0].ID)

	logs := svc.Logs()
	assert.True(t, logs.Has("2026-10-15", read.ID))
	assert.True(t, logs.Has("2026-10-14", read.ID))

	overall := svc.OverallStats()
	assert.Equal(t, 1, overall.TotalHabits)
	assert.Equal(t, 1, overall.CompletedToday)
	assert.Equal(t, 100, overall.TodayPercentage)
	assert.Equal(t, 3, overall.TotalCompletions)

	assert.ErrorIs(t, svc.DeleteHabit(read.ID), ErrHabitNotFound)
}

func TestFindHabit(t *testing.T) {
	svc, _, _ := newTestService(t)
	created, err := svc.CreateHabit(models.Habit{Title: "Morning Run"})
	require.NoError(t, err)

	byID, err := svc.FindHabit(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	byTitle, err := svc.FindHabit("morning run")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byTitle.ID)

	_, err = svc.FindHabit("swim")
	assert.ErrorIs(t, err, ErrHabitNotFound)
}
