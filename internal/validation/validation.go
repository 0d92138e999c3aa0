package validation

import (
	"net/mail"
	"strings"

	"github.com/julianstephens/daybook/internal/constants"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

// Content trims an entry body and rejects empty or whitespace-only text
func Content(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", apperrors.Validation(constants.BannerEmptyContent)
	}
	return trimmed, nil
}

// Mood accepts no mood or a value from 1 to 5
func Mood(m models.Mood) error {
	if m.IsSet() && !m.Valid() {
		return apperrors.Validation("mood must be between %d and %d", constants.MinMood, constants.MaxMood)
	}
	return nil
}

// Date checks a YYYY-MM-DD calendar date
func Date(day string) error {
	if _, err := utils.ParseDate(day); err != nil {
		return apperrors.Validation("invalid date %q, expected YYYY-MM-DD", day)
	}
	return nil
}

// Email normalizes and checks an email address
func Email(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperrors.Validation("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperrors.Validation("invalid email address")
	}
	return email, nil
}

// Password enforces the minimum password length
func Password(password string) error {
	if len(password) < constants.MinPasswordLength {
		return apperrors.Validation("password must be at least %d characters", constants.MinPasswordLength)
	}
	return nil
}
