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

// ErrPortfolioNotFound возвращается, когда портфолио не найдено.
var ErrPortfolioNotFound = fmt.Errorf("portfolio: %w", common.ErrNotFound)

const sectionColumns = "id, portfolio_id, section_type, title, content, image_url, order_index, metadata, created_at"

// PortfolioRepository отвечает за работу с портфолио и их секциями.
type PortfolioRepository struct {
	db *sqlx.DB
}

// NewPortfolioRepository создаёт экземпляр репозитория.
func NewPortfolioRepository(db *sqlx.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetByID возвращает портфолио по идентификатору.
func (r *PortfolioRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Portfolio, error) {
	query, args, err := common.PSQL.
		Select("id", "user_id", "title", "description", "template_id", "is_public", "is_active", "metadata", "created_at", "updated_at").
		From("portfolios").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("portfolio repository: build get %w", err)
	}

	var p models.Portfolio
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("portfolio repository: get by id %w", err)
	}

	return &p, nil
}

// ListSections возвращает секции портфолио в порядке order_index.
func (r *PortfolioRepository) ListSections(ctx context.Context, portfolioID uuid.UUID) ([]models.PortfolioSection, error) {
	query, args, err := common.PSQL.
		Select(sectionColumns).
		From("portfolio_sections").
		Where(sq.Eq{"portfolio_id": portfolioID}).
		OrderBy("order_index ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("portfolio repository: build list sections %w", err)
	}

	sections := make([]models.PortfolioSection, 0)
	if err := r.db.SelectContext(ctx, &sections, query, args...); err != nil {
		return nil, fmt.Errorf("portfolio repository: list sections %w", err)
	}

	return sections, nil
}

// InsertSections вставляет все секции одним запросом в транзакции.
// Либо сохраняются все секции, либо ни одной.
func (r *PortfolioRepository) InsertSections(ctx context.Context, sections []models.PortfolioSection) ([]models.PortfolioSection, error) {
	if len(sections) == 0 {
		return []models.PortfolioSection{}, nil
	}

	query, args, err := buildSectionsInsert(sections).ToSql()
	if err != nil {
		return nil, fmt.Errorf("portfolio repository: build insert sections %w", err)
	}

	inserted := make([]models.PortfolioSection, 0, len(sections))
	err = common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &inserted, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("portfolio repository: insert sections %w", err)
	}

	return inserted, nil
}

// buildSectionsInsert собирает batch INSERT для секций (без N+1).
func buildSectionsInsert(sections []models.PortfolioSection) sq.InsertBuilder {
	b := common.PSQL.
		Insert("portfolio_sections").
		Columns("portfolio_id", "section_type", "title", "content", "image_url", "order_index", "metadata")

	for _, s := range sections {
		metadata := s.Metadata
		if metadata == nil {
			metadata = models.JSONMap{}
		}
		b = b.Values(s.PortfolioID, s.SectionType, s.Title, s.Content, s.ImageURL, s.OrderIndex, metadata)
	}

	return b.Suffix("RETURNING " + sectionColumns)
}
