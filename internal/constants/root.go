package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// BannerKind distinguishes success banners from error banners
type BannerKind string

const (
	AppName            = "daybook"
	DefaultKeyringUser = "database-connection"
	SessionKeyringUser = "session-token"
	SigningKeyringUser = "signing-secret"
	DefaultConfigPath  = "~/.config/daybook/daybook.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// ChartLabelFormat is the label used for chart buckets, e.g. "Oct 19"
	ChartLabelFormat = "Jan 2"

	// Journal limits
	DefaultPromptLimit  = 3
	DefaultHistoryLimit = 10
	DefaultSearchLimit  = 20
	MaxListLimit        = 200

	// Timing
	SearchDebounce = 300 * time.Millisecond
	BannerTimeout  = 3 * time.Second

	// Aggregation windows in days
	MoodAverageWindowDays = 7
	TrendWindowDays       = 30

	// Mood range
	MinMood = 1
	MaxMood = 5

	// Identity
	DefaultTokenTTL   = 72 * time.Hour
	ResetTokenTTL     = time.Hour
	MinPasswordLength = 8
	SessionCookieName = "daybook_session"
	SigningSecretSize = 32
	ResetTokenSize    = 24

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daybook-"
	BackupFileSuffix = ".db"

	// Banner kinds
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"

	// Banner messages
	BannerEntrySaved      = "Entry saved successfully!"
	BannerEntryUpdated    = "Entry updated successfully!"
	BannerEntryDeleted    = "Entry deleted"
	BannerDeleteFailed    = "Error deleting entry"
	BannerEmptyContent    = "Please write something before submitting"
	BannerSubmitFailed    = "Error submitting entry"
	BannerUpdateFailed    = "Error updating entry"
	BannerFetchFailed     = "Error fetching data"
	BannerSearchFailed    = "Error searching entries"
	BannerLoginRequired   = "Please login to save your journal entries"
	BannerHistoryRequired = "Please login to view your journal history"
)

// Session States
const (
	StateJournal SessionState = iota
	StateHistory
	StateDashboard
	StateCalendar
	StateResources
	StateEntryDetail
	StateWriting
	StateEditing
)
