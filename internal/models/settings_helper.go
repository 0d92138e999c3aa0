package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/daybook/internal/constants"
)

// DefaultSettings returns the settings used for a fresh store
func DefaultSettings() Settings {
	return Settings{
		Timezone:     constants.DefaultTimezone,
		PromptLimit:  constants.DefaultPromptLimit,
		HistoryLimit: constants.DefaultHistoryLimit,
		SearchLimit:  constants.DefaultSearchLimit,
	}
}

// WithDefaults fills zero-valued fields from DefaultSettings
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	if s.Timezone == "" {
		s.Timezone = d.Timezone
	}
	if s.PromptLimit <= 0 {
		s.PromptLimit = d.PromptLimit
	}
	if s.HistoryLimit <= 0 {
		s.HistoryLimit = d.HistoryLimit
	}
	if s.SearchLimit <= 0 {
		s.SearchLimit = d.SearchLimit
	}
	return s
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingPromptLimit:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing prompt_limit: %w", err)
			}
			settings.PromptLimit = n
		case constants.SettingHistoryLimit:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing history_limit: %w", err)
			}
			settings.HistoryLimit = n
		case constants.SettingSearchLimit:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing search_limit: %w", err)
			}
			settings.SearchLimit = n
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:     settings.Timezone,
		constants.SettingPromptLimit:  strconv.Itoa(settings.PromptLimit),
		constants.SettingHistoryLimit: strconv.Itoa(settings.HistoryLimit),
		constants.SettingSearchLimit:  strconv.Itoa(settings.SearchLimit),
	}
}
