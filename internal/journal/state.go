package journal

import (
	"strings"

	"github.com/julianstephens/daybook/internal/constants"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/models"
)

// Banner is a transient message. Seq identifies which banner an expiry
// timer belongs to.
type Banner struct {
	Kind    constants.BannerKind `json:"kind"`
	Message string               `json:"message"`
	Seq     int                  `json:"seq"`
}

// Visible reports whether a banner is showing
func (b Banner) Visible() bool {
	return b.Message != ""
}

// State is an immutable snapshot of everything a journal surface shows.
// Reduce never mutates its input; slices and maps are copied on write.
type State struct {
	Today        string
	Prompts      []models.Prompt
	TodayEntries map[string]models.JournalEntry
	Streak       models.StreakInfo
	History      []models.HistoryEntry
	HistoryLimit int // 0 keeps every row

	SearchQuery   string
	SearchSeq     int
	Searching     bool
	SearchResults []models.HistoryEntry

	Detail     models.HistoryEntry
	DetailOpen bool

	Banner Banner
}

// Event is anything that changes State
type Event interface {
	event()
}

type (
	// HomeLoaded replaces the feed, today's entries, history and streak
	HomeLoaded struct{ Home Home }
	// EntrySaved records a submission result
	EntrySaved struct{ Result SubmitResult }
	// EntryUpdated carries an edited entry to every list that shows it
	EntryUpdated struct{ Entry models.HistoryEntry }
	// EntryDeleted drops an entry from every list
	EntryDeleted struct{ ID string }
	// SearchQueryChanged starts a new search generation
	SearchQueryChanged struct{ Query string }
	// SearchCompleted delivers results for generation Seq
	SearchCompleted struct {
		Seq     int
		Results []models.HistoryEntry
	}
	// EntrySelected opens the detail view
	EntrySelected struct{ Entry models.HistoryEntry }
	// EntryClosed closes the detail view
	EntryClosed struct{}
	// BannerShown displays a message
	BannerShown struct {
		Kind    constants.BannerKind
		Message string
	}
	// RequestFailed shows an error banner for a failed operation
	RequestFailed struct {
		Err      error
		Fallback string
	}
	// BannerExpired clears banner Seq if it is still showing
	BannerExpired struct{ Seq int }
)

func (HomeLoaded) event()         {}
func (EntrySaved) event()         {}
func (EntryUpdated) event()       {}
func (EntryDeleted) event()       {}
func (SearchQueryChanged) event() {}
func (SearchCompleted) event()    {}
func (EntrySelected) event()      {}
func (EntryClosed) event()        {}
func (BannerShown) event()        {}
func (RequestFailed) event()      {}
func (BannerExpired) event()      {}

// Reduce returns the state that results from applying ev to s
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case HomeLoaded:
		s.Today = ev.Home.Today
		s.Prompts = ev.Home.Prompts
		s.TodayEntries = ev.Home.TodayEntries
		s.History = ev.Home.History
		s.HistoryLimit = ev.Home.HistoryLimit
		s.Streak = ev.Home.Streak

	case EntrySaved:
		entry := ev.Result.Entry
		entries := make(map[string]models.JournalEntry, len(s.TodayEntries)+1)
		for k, v := range s.TodayEntries {
			entries[k] = v
		}
		entries[entry.PromptID] = entry
		s.TodayEntries = entries
		s.Streak = ev.Result.Streak

		row := models.HistoryEntry{JournalEntry: entry, Prompt: s.promptRef(entry.PromptID)}
		if !ev.Result.Created {
			s.SearchResults = replaceEntry(s.SearchResults, row)
			if s.DetailOpen && s.Detail.ID == row.ID {
				s.Detail = keepPrompt(row, s.Detail)
			}
			for _, prev := range s.History {
				if prev.ID == row.ID {
					row = keepPrompt(row, prev)
					break
				}
			}
		}
		history := make([]models.HistoryEntry, 0, len(s.History)+1)
		history = append(history, row)
		history = append(history, removeEntry(s.History, row.ID)...)
		if s.HistoryLimit > 0 && len(history) > s.HistoryLimit {
			history = history[:s.HistoryLimit]
		}
		s.History = history
		s = s.showBanner(constants.BannerSuccess, constants.BannerEntrySaved)

	case EntryUpdated:
		s.History = replaceEntry(s.History, ev.Entry)
		s.SearchResults = replaceEntry(s.SearchResults, ev.Entry)
		if s.DetailOpen && s.Detail.ID == ev.Entry.ID {
			s.Detail = keepPrompt(ev.Entry, s.Detail)
		}
		if cur, ok := s.TodayEntries[ev.Entry.PromptID]; ok && cur.ID == ev.Entry.ID {
			entries := make(map[string]models.JournalEntry, len(s.TodayEntries))
			for k, v := range s.TodayEntries {
				entries[k] = v
			}
			entries[ev.Entry.PromptID] = ev.Entry.JournalEntry
			s.TodayEntries = entries
		}
		s = s.showBanner(constants.BannerSuccess, constants.BannerEntryUpdated)

	case EntryDeleted:
		s.History = removeEntry(s.History, ev.ID)
		s.SearchResults = removeEntry(s.SearchResults, ev.ID)
		if s.DetailOpen && s.Detail.ID == ev.ID {
			s.Detail = models.HistoryEntry{}
			s.DetailOpen = false
		}
		for k, v := range s.TodayEntries {
			if v.ID != ev.ID {
				continue
			}
			entries := make(map[string]models.JournalEntry, len(s.TodayEntries))
			for k2, v2 := range s.TodayEntries {
				if k2 != k {
					entries[k2] = v2
				}
			}
			s.TodayEntries = entries
			break
		}

	case SearchQueryChanged:
		s.SearchQuery = ev.Query
		s.SearchSeq++
		if strings.TrimSpace(ev.Query) == "" {
			s.Searching = false
			s.SearchResults = nil
		} else {
			s.Searching = true
		}

	case SearchCompleted:
		if ev.Seq != s.SearchSeq || strings.TrimSpace(s.SearchQuery) == "" {
			return s
		}
		s.Searching = false
		s.SearchResults = ev.Results

	case EntrySelected:
		s.Detail = ev.Entry
		s.DetailOpen = true

	case EntryClosed:
		s.Detail = models.HistoryEntry{}
		s.DetailOpen = false

	case BannerShown:
		s = s.showBanner(ev.Kind, ev.Message)

	case RequestFailed:
		s.Searching = false
		s = s.showBanner(constants.BannerError, apperrors.Banner(ev.Err, ev.Fallback))

	case BannerExpired:
		if s.Banner.Seq == ev.Seq {
			s.Banner = Banner{Seq: s.Banner.Seq}
		}
	}
	return s
}

// Entries is the list a history view shows: search results while a query
// is active, otherwise recent history.
func (s State) Entries() []models.HistoryEntry {
	if strings.TrimSpace(s.SearchQuery) == "" {
		return s.History
	}
	return s.SearchResults
}

func (s State) showBanner(kind constants.BannerKind, message string) State {
	s.Banner = Banner{Kind: kind, Message: message, Seq: s.Banner.Seq + 1}
	return s
}

func (s State) promptRef(id string) models.PromptRef {
	for _, p := range s.Prompts {
		if p.ID == id {
			return models.SomePrompt(p)
		}
	}
	for _, h := range s.History {
		if h.PromptID == id {
			return h.Prompt
		}
	}
	return models.NoPrompt()
}

func replaceEntry(list []models.HistoryEntry, entry models.HistoryEntry) []models.HistoryEntry {
	idx := -1
	for i, e := range list {
		if e.ID == entry.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list
	}
	out := make([]models.HistoryEntry, len(list))
	copy(out, list)
	out[idx] = keepPrompt(entry, list[idx])
	return out
}

// keepPrompt carries the previous join result over when an update
// arrives without one
func keepPrompt(entry, prev models.HistoryEntry) models.HistoryEntry {
	if _, ok := entry.Prompt.Get(); !ok {
		entry.Prompt = prev.Prompt
	}
	return entry
}

func removeEntry(list []models.HistoryEntry, id string) []models.HistoryEntry {
	for i, e := range list {
		if e.ID == id {
			out := make([]models.HistoryEntry, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}
