package constants

const (
	DefaultWaterGoalML       = 3000
	DefaultTaskDurationMin   = 30
	DefaultFastingTargetMin  = 16 * 60
	CompletionRateWindowDays = 30
	DefaultTheme             = "system"
)

// Moods offered by the mood picker. Any non-empty string is accepted by the store.
var Moods = []string{"😊", "😐", "😢", "😡", "😴", "🤩", "😌", "😰"}
