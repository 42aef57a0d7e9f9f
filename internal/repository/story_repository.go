package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/promptfolio-backend/internal/models"
	"github.com/ignatzorin/promptfolio-backend/internal/repository/common"
)

// StoryRepository хранит сгенерированные истории.
type StoryRepository struct {
	db *sqlx.DB
}

func NewStoryRepository(db *sqlx.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

// Create сохраняет историю и заполняет ID и CreatedAt.
func (r *StoryRepository) Create(ctx context.Context, s *models.Story) error {
	query, args, err := common.PSQL.
		Insert("stories").
		Columns("user_id", "title", "content", "prompt_used", "is_public").
		Values(s.UserID, s.Title, s.Content, s.PromptUsed, s.IsPublic).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("story repository: build insert %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		return fmt.Errorf("story repository: insert %w", err)
	}
	return nil
}

// ListByUser возвращает истории пользователя, новые первыми.
func (r *StoryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Story, error) {
	query, args, err := common.PSQL.
		Select("id", "user_id", "title", "content", "prompt_used", "is_public", "created_at").
		From("stories").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("story repository: build list %w", err)
	}

	stories := make([]models.Story, 0)
	if err := r.db.SelectContext(ctx, &stories, query, args...); err != nil {
		return nil, fmt.Errorf("story repository: list %w", err)
	}
	return stories, nil
}
