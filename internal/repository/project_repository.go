package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/promptfolio-backend/internal/models"
	"github.com/ignatzorin/promptfolio-backend/internal/repository/common"
)

// ProjectRepository работает с проектами пользователей.
type ProjectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ListRecent возвращает последние проекты пользователя, новые первыми.
func (r *ProjectRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Project, error) {
	query, args, err := buildRecentProjectsQuery(userID, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("project repository: build list %w", err)
	}

	projects := make([]models.Project, 0, limit)
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("project repository: list recent %w", err)
	}
	return projects, nil
}

func buildRecentProjectsQuery(userID uuid.UUID, limit int) sq.SelectBuilder {
	if limit <= 0 {
		limit = 5
	}
	return common.PSQL.
		Select("id", "user_id", "title", "description", "project_url", "github_repo", "github_synced",
			"category", "is_public", "image_url", "created_at", "updated_at").
		From("projects").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))
}

// CreateIfAbsent вставляет проект, если у пользователя ещё нет проекта с тем же github_repo.
// Возвращает false, если строка уже существовала.
func (r *ProjectRepository) CreateIfAbsent(ctx context.Context, p *models.Project) (bool, error) {
	query, args, err := common.PSQL.
		Insert("projects").
		Columns("user_id", "title", "description", "project_url", "github_repo", "github_synced",
			"category", "is_public", "image_url").
		Values(p.UserID, p.Title, p.Description, p.ProjectURL, p.GitHubRepo, p.GitHubSynced,
			p.Category, p.IsPublic, p.ImageURL).
		Suffix("ON CONFLICT (user_id, github_repo) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("project repository: build insert %w", err)
	}

	row := r.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if common.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("project repository: insert %w", err)
	}

	return true, nil
}
