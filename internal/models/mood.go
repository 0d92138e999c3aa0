package models

import "math"

// Mood is a 1-5 self-rating. Zero means no mood was recorded.
type Mood int

const NoMood Mood = 0

// MoodOption describes how a mood value is presented
type MoodOption struct {
	Value Mood   `json:"value"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

// MoodOptions lists the selectable moods in ascending order
var MoodOptions = []MoodOption{
	{Value: 1, Emoji: "😔", Label: "Very low"},
	{Value: 2, Emoji: "😕", Label: "Low"},
	{Value: 3, Emoji: "😐", Label: "Neutral"},
	{Value: 4, Emoji: "🙂", Label: "Good"},
	{Value: 5, Emoji: "😊", Label: "Great"},
}

// IsSet reports whether a mood was recorded
func (m Mood) IsSet() bool {
	return m != NoMood
}

// Valid reports whether m is a recorded mood within range
func (m Mood) Valid() bool {
	return m >= 1 && m <= 5
}

// Option returns the presentation for m
func (m Mood) Option() (MoodOption, bool) {
	if !m.Valid() {
		return MoodOption{}, false
	}
	return MoodOptions[m-1], true
}

// Emoji returns the emoji for m, or "" when no mood is set
func (m Mood) Emoji() string {
	opt, _ := m.Option()
	return opt.Emoji
}

// Label returns the label for m, or "" when no mood is set
func (m Mood) Label() string {
	opt, _ := m.Option()
	return opt.Label
}

// NearestMood rounds an average mood to the closest option
func NearestMood(avg float64) Mood {
	m := Mood(math.Round(avg))
	if m < 1 {
		return 1
	}
	if m > 5 {
		return 5
	}
	return m
}
