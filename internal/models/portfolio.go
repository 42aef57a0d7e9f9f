package models

import (
	"time"

	"github.com/google/uuid"
)

// Portfolio описывает портфолио пользователя.
type Portfolio struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	TemplateID  *string   `db:"template_id" json:"template_id,omitempty"`
	IsPublic    bool      `db:"is_public" json:"is_public"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	Metadata    JSONMap   `db:"metadata" json:"metadata"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PortfolioSection блок контента портфолио. Порядок вывода задаёт OrderIndex.
type PortfolioSection struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PortfolioID uuid.UUID `db:"portfolio_id" json:"portfolio_id"`
	SectionType string    `db:"section_type" json:"section_type"`
	Title       *string   `db:"title" json:"title"`
	Content     *string   `db:"content" json:"content"`
	ImageURL    *string   `db:"image_url" json:"image_url"`
	OrderIndex  int       `db:"order_index" json:"order_index"`
	Metadata    JSONMap   `db:"metadata" json:"metadata"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// PortfolioView портфолио вместе с секциями для публичного просмотра.
type PortfolioView struct {
	Portfolio
	Sections []PortfolioSection `json:"sections"`
}
