package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/models"
)

func (s *Store) AddPrompt(ctx context.Context, p models.Prompt) error {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prompts (id, title, description, prompt_type, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			prompt_type = excluded.prompt_type,
			position = excluded.position`,
		p.ID, p.Title, p.Description, string(p.Type), p.Position, formatTime(createdAt))
	return err
}

func (s *Store) GetPrompt(ctx context.Context, id string) (models.Prompt, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, prompt_type, position, created_at
		FROM prompts WHERE id = ?`, id)

	p, err := scanPrompt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Prompt{}, apperrors.NotFound("prompt %q not found", id)
	}
	return p, err
}

func (s *Store) GetPrompts(ctx context.Context, limit int) ([]models.Prompt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, prompt_type, position, created_at
		FROM prompts ORDER BY position, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prompts := []models.Prompt{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPrompt(row scanner) (models.Prompt, error) {
	var p models.Prompt
	var promptType, createdAt string
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &promptType, &p.Position, &createdAt); err != nil {
		return models.Prompt{}, err
	}
	p.Type = models.PromptType(promptType)

	var err error
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Prompt{}, err
	}
	return p, nil
}
