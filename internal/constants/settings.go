package constants

const (
	// General Settings
	SettingTimezone     = "timezone"
	SettingPromptLimit  = "prompt_limit"
	SettingHistoryLimit = "history_limit"
	SettingSearchLimit  = "search_limit"

	// Default Settings Values
	DefaultTimezone = "Local" // Use system local timezone by default
)
