package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
)

const returnedColumns = `id, user_id, prompt_id, content, entry_date, mood, streak_count, created_at, updated_at`

const entryColumns = `e.id, e.user_id, e.prompt_id, e.content, e.entry_date, e.mood, e.streak_count, e.created_at, e.updated_at`

const joinedColumns = entryColumns + `,
	p.id, p.title, p.description, p.prompt_type, p.position, p.created_at`

const joinedFrom = `FROM journal_entries e LEFT JOIN prompts p ON p.id = e.prompt_id`

func (s *Store) UpsertEntry(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO journal_entries
			(id, user_id, prompt_id, content, entry_date, mood, streak_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, prompt_id, entry_date) DO UPDATE SET
			content = excluded.content,
			mood = excluded.mood,
			updated_at = excluded.updated_at
		RETURNING `+returnedColumns,
		entry.ID, entry.UserID, entry.PromptID, entry.Content, entry.EntryDate,
		moodArg(entry.Mood), entry.StreakCount,
		formatTime(entry.CreatedAt), formatTime(entry.UpdatedAt))

	stored, err := scanEntry(row)
	if err != nil {
		return models.JournalEntry{}, false, err
	}
	return stored, stored.ID == entry.ID, nil
}

func (s *Store) GetEntry(ctx context.Context, userID, id string) (models.HistoryEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+joinedColumns+` `+joinedFrom+`
		WHERE e.user_id = ? AND e.id = ?`, userID, id)

	entry, err := scanHistoryEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HistoryEntry{}, apperrors.NotFound("entry not found")
	}
	return entry, err
}

func (s *Store) GetEntryForDay(ctx context.Context, userID, promptID, day string) (models.JournalEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM journal_entries e
		WHERE e.user_id = ? AND e.prompt_id = ? AND e.entry_date = ?`, userID, promptID, day)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JournalEntry{}, apperrors.NotFound("no entry for %s", day)
	}
	return entry, err
}

func (s *Store) GetEntriesForDay(ctx context.Context, userID, day string) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM journal_entries e
		WHERE e.user_id = ? AND e.entry_date = ?
		ORDER BY e.created_at`, userID, day)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (s *Store) GetLatestEntry(ctx context.Context, userID string) (models.JournalEntry, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM journal_entries e
		WHERE e.user_id = ?
		ORDER BY e.entry_date DESC, e.created_at DESC
		LIMIT 1`, userID)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JournalEntry{}, false, nil
	}
	if err != nil {
		return models.JournalEntry{}, false, err
	}
	return entry, true, nil
}

func (s *Store) ListHistory(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+joinedColumns+` `+joinedFrom+`
		WHERE e.user_id = ?
		ORDER BY e.entry_date DESC, e.created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectHistory(rows)
}

func (s *Store) SearchEntries(ctx context.Context, userID, query string, limit int) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+joinedColumns+` `+joinedFrom+`
		WHERE e.user_id = ?
			AND fold(e.content) LIKE '%' || fold(?) || '%' ESCAPE '\'
		ORDER BY e.entry_date DESC, e.created_at DESC
		LIMIT ?`, userID, storage.EscapeLike(query), limit)
	if err != nil {
		return nil, err
	}
	return collectHistory(rows)
}

func (s *Store) UpdateEntry(ctx context.Context, userID, id, content string, mood models.Mood, at time.Time) (models.HistoryEntry, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE journal_entries SET content = ?, mood = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		content, moodArg(mood), formatTime(at), userID, id)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.HistoryEntry{}, err
	}
	if n == 0 {
		return models.HistoryEntry{}, apperrors.NotFound("entry not found")
	}
	return s.GetEntry(ctx, userID, id)
}

func (s *Store) GetAllEntries(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM journal_entries e
		WHERE e.user_id = ?
		ORDER BY e.entry_date, e.created_at`, userID)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (s *Store) GetEntriesInRange(ctx context.Context, userID, startDay, endDay string) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM journal_entries e
		WHERE e.user_id = ? AND e.entry_date >= ? AND e.entry_date <= ?
		ORDER BY e.entry_date, e.created_at`, userID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (s *Store) DeleteEntry(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM journal_entries WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("entry not found")
	}
	return nil
}

func moodArg(m models.Mood) any {
	if !m.IsSet() {
		return nil
	}
	return int64(m)
}

func scanEntry(row scanner) (models.JournalEntry, error) {
	var e models.JournalEntry
	var mood sql.NullInt64
	var createdAt, updatedAt string
	err := row.Scan(&e.ID, &e.UserID, &e.PromptID, &e.Content, &e.EntryDate,
		&mood, &e.StreakCount, &createdAt, &updatedAt)
	if err != nil {
		return models.JournalEntry{}, err
	}
	return finishEntry(e, mood, createdAt, updatedAt)
}

func finishEntry(e models.JournalEntry, mood sql.NullInt64, createdAt, updatedAt string) (models.JournalEntry, error) {
	if mood.Valid {
		e.Mood = models.Mood(mood.Int64)
	}
	var err error
	if e.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.JournalEntry{}, err
	}
	if e.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.JournalEntry{}, err
	}
	return e, nil
}

func scanHistoryEntry(row scanner) (models.HistoryEntry, error) {
	var e models.JournalEntry
	var mood sql.NullInt64
	var createdAt, updatedAt string
	var pID, pTitle, pDesc, pType, pCreated sql.NullString
	var pPos sql.NullInt64

	err := row.Scan(&e.ID, &e.UserID, &e.PromptID, &e.Content, &e.EntryDate,
		&mood, &e.StreakCount, &createdAt, &updatedAt,
		&pID, &pTitle, &pDesc, &pType, &pPos, &pCreated)
	if err != nil {
		return models.HistoryEntry{}, err
	}

	entry, err := finishEntry(e, mood, createdAt, updatedAt)
	if err != nil {
		return models.HistoryEntry{}, err
	}

	ref := models.NoPrompt()
	if pID.Valid {
		p := models.Prompt{
			ID:          pID.String,
			Title:       pTitle.String,
			Description: pDesc.String,
			Type:        models.PromptType(pType.String),
			Position:    int(pPos.Int64),
		}
		if p.CreatedAt, err = parseTime("prompt created_at", pCreated.String); err != nil {
			return models.HistoryEntry{}, err
		}
		ref = models.SomePrompt(p)
	}

	return models.HistoryEntry{JournalEntry: entry, Prompt: ref}, nil
}

func collectEntries(rows *sql.Rows) ([]models.JournalEntry, error) {
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func collectHistory(rows *sql.Rows) ([]models.HistoryEntry, error) {
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		e, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
