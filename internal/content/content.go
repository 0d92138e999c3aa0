// Package content holds the static text shown alongside the journal.
package content

import (
	"time"

	"github.com/julianstephens/daybook/internal/models"
)

var quotes = []models.Quote{
	{Text: "The unexamined life is not worth living.", Author: "Socrates"},
	{Text: "You have power over your mind, not outside events. Realize this, and you will find strength.", Author: "Marcus Aurelius"},
	{Text: "Between stimulus and response there is a space. In that space is our power to choose our response.", Author: "Viktor Frankl"},
	{Text: "We suffer more in imagination than in reality.", Author: "Seneca"},
	{Text: "Life is not a problem to be solved, but a reality to be experienced.", Author: "Søren Kierkegaard"},
	{Text: "What lies behind us and what lies before us are tiny matters compared to what lies within us.", Author: "Ralph Waldo Emerson"},
	{Text: "Your task is not to seek for love, but merely to seek and find all the barriers within yourself that you have built against it.", Author: "Rumi"},
	{Text: "Not how long, but how well you have lived is the main thing.", Author: "Seneca"},
	{Text: "The present moment is the only moment available to us, and it is the door to all moments.", Author: "Thich Nhat Hanh"},
	{Text: "To thine own self be true.", Author: "William Shakespeare"},
	{Text: "Knowing yourself is the beginning of all wisdom.", Author: "Aristotle"},
	{Text: "He who has a why to live can bear almost any how.", Author: "Friedrich Nietzsche"},
	{Text: "The soul that sees beauty may sometimes walk alone.", Author: "Johann Wolfgang von Goethe"},
	{Text: "Happiness is not something ready-made. It comes from your own actions.", Author: "Dalai Lama XIV"},
	{Text: "In the middle of difficulty lies opportunity.", Author: "Albert Einstein"},
	{Text: "You yourself, as much as anybody in the entire universe, deserve your love and affection.", Author: "Buddha"},
	{Text: "The only way out is through.", Author: "Robert Frost"},
	{Text: "Everything can be taken from a man but one thing: to choose one's attitude in any given set of circumstances.", Author: "Viktor Frankl"},
	{Text: "Wherever you are, be all there.", Author: "Jim Elliot"},
	{Text: "Almost everything will work again if you unplug it for a few minutes, including you.", Author: "Anne Lamott"},
}

// Quotes returns a copy of every quote in rotation order
func Quotes() []models.Quote {
	out := make([]models.Quote, len(quotes))
	copy(out, quotes)
	return out
}

// QuoteOfDay picks the quote for t's calendar day. The same day always
// yields the same quote.
func QuoteOfDay(t time.Time) models.Quote {
	return quotes[t.YearDay()%len(quotes)]
}

// Resources returns the static sections of the resources page
func Resources() []models.ResourceSection {
	return []models.ResourceSection{
		{
			Title: "Benefits of Journaling",
			Content: []string{
				"Reduces stress and anxiety by providing an emotional outlet",
				"Improves self-awareness and emotional intelligence",
				"Helps track personal growth and patterns over time",
				"Enhances creativity and problem-solving skills",
				"Strengthens memory and comprehension",
				"Boosts mood and overall mental well-being",
			},
		},
		{
			Title: "Types of Journaling",
			Content: []string{
				"Gratitude Journaling - Focus on daily moments of appreciation",
				"Bullet Journaling - Organized tracking of tasks and goals",
				"Stream of Consciousness - Free-flowing thoughts without structure",
				"Reflective Journaling - Analysis of experiences and emotions",
				"Dream Journaling - Recording and analyzing dreams",
				"Prompt-Based Journaling - Guided writing based on specific questions",
			},
		},
		{
			Title: "Tips for Effective Journaling",
			Content: []string{
				"Set aside dedicated time each day for journaling",
				"Write without judgment or self-criticism",
				"Be honest and authentic in your entries",
				"Don't worry about perfect grammar or spelling",
				"Try different journaling styles to find what works for you",
				"Review your entries periodically to track your growth",
			},
		},
		{
			Title: "Mental Health Support",
			Content: []string{
				"National Crisis Line: 988",
				"Crisis Text Line: Text HOME to 741741",
				"SAMHSA's National Helpline: 1-800-662-4357",
			},
		},
		{
			Title: "Recommended Reading",
			Content: []string{
				`"The Artist's Way Morning Pages Journal" by Julia Cameron`,
				`"Writing Down the Bones" by Natalie Goldberg`,
				`"The Self-Discovery Journal" by Hannah Braime`,
			},
		},
	}
}
