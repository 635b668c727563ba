package constants

const (
	AppName           = "streaklit"
	DefaultConfigPath = "~/.config/streaklit/streaklit.db"
	Version           = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// TimeFormat is the 24h time-of-day format (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "streaklit-"
	BackupFileSuffix = ".json"

	// RoutinesFileName is the optional routine template override file in the config dir
	RoutinesFileName = "routines.yaml"

	// EnvFileName is the optional dotenv file in the config dir
	EnvFileName = ".env"
)
