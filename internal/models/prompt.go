package models

import (
	"encoding/json"
	"time"
)

// PromptType categorizes a writing prompt
type PromptType string

const (
	PromptReflection PromptType = "reflection"
	PromptGratitude  PromptType = "gratitude"
	PromptIntention  PromptType = "intention"
	PromptEmotion    PromptType = "emotion"
	PromptGrowth     PromptType = "growth"
)

// Prompt is a reusable writing topic shown to the user
type Prompt struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        PromptType `json:"prompt_type"`
	Position    int        `json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PromptRef is the result of joining an entry to its prompt: exactly one
// prompt, or none when the prompt row is missing.
type PromptRef struct {
	prompt Prompt
	valid  bool
}

// SomePrompt wraps a joined prompt
func SomePrompt(p Prompt) PromptRef {
	return PromptRef{prompt: p, valid: true}
}

// NoPrompt is the empty join result
func NoPrompt() PromptRef {
	return PromptRef{}
}

// Get returns the joined prompt and whether there was one
func (r PromptRef) Get() (Prompt, bool) {
	return r.prompt, r.valid
}

// Title returns the prompt title, or "" when there is no prompt
func (r PromptRef) Title() string {
	return r.prompt.Title
}

// Description returns the prompt description, or "" when there is no prompt
func (r PromptRef) Description() string {
	return r.prompt.Description
}

func (r PromptRef) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.prompt)
}

func (r *PromptRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = NoPrompt()
		return nil
	}
	var p Prompt
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = SomePrompt(p)
	return nil
}
