package constants

import "time"

const (
	AppName            = "fastward"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/fastward/fastward.db"
	Version            = "v0.2.0"

	// DefaultUserID scopes all sessions created by the CLI. The core is
	// multi-user; the local CLI always acts as this single user.
	DefaultUserID = "local"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "fastward-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "fastward-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.fastward.tray"
)

const (
	// History pagination bounds. These are part of the session-history
	// contract: limits outside [HistoryMinLimit, HistoryMaxLimit] are
	// clamped, never rejected.
	HistoryDefaultLimit = 50
	HistoryMinLimit     = 1
	HistoryMaxLimit     = 200

	// ExtendMaxHours caps a single extension. Extensions must be in
	// (0, ExtendMaxHours].
	ExtendMaxHours = 24.0

	// CompletionRateWindowDays is the trailing window for the completion
	// rate percentage.
	CompletionRateWindowDays = 30
)

// Profile defaults. The planner and stores fall back to these whenever a
// profile field is missing or zero-valued.
const (
	DefaultTimezone                   = "Local"
	DefaultNotificationsEnabled       = true
	DefaultNotifyHalfway              = true
	DefaultNotifyFastEnd              = true
	DefaultNotifyNextFast             = true
	DefaultWaterRemindersEnabled      = false
	DefaultWaterReminderIntervalMin   = 120
	DefaultEatingWindowHours          = 8
	DefaultProtocolName               = "16:8"
	DefaultNotificationGracePeriodMin = 10
)
