package models

import (
	"time"

	"github.com/google/uuid"
)

// Project работа пользователя. Импортированные из GitHub проекты помечены GitHubSynced.
type Project struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	ProjectURL   string    `db:"project_url" json:"project_url"`
	GitHubRepo   *string   `db:"github_repo" json:"github_repo,omitempty"`
	GitHubSynced bool      `db:"github_synced" json:"github_synced"`
	Category     string    `db:"category" json:"category"`
	IsPublic     bool      `db:"is_public" json:"is_public"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
