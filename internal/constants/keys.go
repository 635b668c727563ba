package constants

// Persisted keys. Values are JSON documents except where noted.
const (
	KeyHabits          = "habits"
	KeyLogs            = "logs"
	KeyTasks           = "tasks"
	KeyWaterLogs       = "water_logs_final"
	KeyWaterGoal       = "water_goal" // stringified integer
	KeySleepSessions   = "sleep_sessions"
	KeyFastingSessions = "fasting_sessions"
	KeyMoodEntries     = "mood_entries"
	KeyTheme           = "app_theme"
	KeyUserName        = "user_name"
)

// AllKeys lists every key the application writes.
var AllKeys = []string{
	KeyHabits,
	KeyLogs,
	KeyTasks,
	KeyWaterLogs,
	KeyWaterGoal,
	KeySleepSessions,
	KeyFastingSessions,
	KeyMoodEntries,
	KeyTheme,
	KeyUserName,
}
