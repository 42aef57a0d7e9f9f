package models

import (
	"time"

	"github.com/google/uuid"
)

// Story сгенерированная история, сохранённая по запросу пользователя.
type Story struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Title      string    `db:"title" json:"title"`
	Content    string    `db:"content" json:"content"`
	PromptUsed string    `db:"prompt_used" json:"prompt_used"`
	IsPublic   bool      `db:"is_public" json:"is_public"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
