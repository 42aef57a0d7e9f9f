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

// ErrProfileNotFound возвращается, когда у пользователя нет профиля.
var ErrProfileNotFound = fmt.Errorf("profile: %w", common.ErrNotFound)

// ProfileRepository читает профили пользователей.
type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByID возвращает профиль по идентификатору пользователя.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query, args, err := common.PSQL.
		Select("id", "bio", "github_username", "created_at", "updated_at").
		From("profiles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("profile repository: build get %w", err)
	}

	var p models.Profile
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("profile repository: get by id %w", err)
	}
	return &p, nil
}
