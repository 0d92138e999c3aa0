package storage

import "github.com/julianstephens/daybook/internal/models"

// DefaultPrompts is the prompt set seeded into a fresh store
var DefaultPrompts = []models.Prompt{
	{
		ID:          "daily-reflection",
		Title:       "Daily Reflection",
		Description: "What stood out to you today, and why did it matter?",
		Type:        models.PromptReflection,
		Position:    1,
	},
	{
		ID:          "gratitude",
		Title:       "Gratitude",
		Description: "Name three things you are grateful for right now.",
		Type:        models.PromptGratitude,
		Position:    2,
	},
	{
		ID:          "intention",
		Title:       "Intention",
		Description: "What is one intention you want to carry into tomorrow?",
		Type:        models.PromptIntention,
		Position:    3,
	},
	{
		ID:          "emotional-check-in",
		Title:       "Emotional Check-in",
		Description: "How are you feeling, and where do you notice it in your body?",
		Type:        models.PromptEmotion,
		Position:    4,
	},
	{
		ID:          "growth",
		Title:       "Growth",
		Description: "What challenged you recently, and what did it teach you?",
		Type:        models.PromptGrowth,
		Position:    5,
	},
}
