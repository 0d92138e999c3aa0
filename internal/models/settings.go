package models

// Settings represents application-wide settings
type Settings struct {
	Timezone     string `json:"timezone"`      // IANA timezone name, or "Local" for system timezone
	PromptLimit  int    `json:"prompt_limit"`  // prompts shown on the journal page
	HistoryLimit int    `json:"history_limit"` // entries in the recent history list
	SearchLimit  int    `json:"search_limit"`  // maximum search results
}
