package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile профиль пользователя. ID совпадает с идентификатором в сервисе авторизации.
type Profile struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Bio            *string   `db:"bio" json:"bio,omitempty"`
	GitHubUsername *string   `db:"github_username" json:"github_username,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
