package dto

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/promptfolio-backend/internal/github"
	"github.com/ignatzorin/promptfolio-backend/internal/models"
)

// StorytellingResponse ответ без стриминга.
// Saved отсутствует, если сохранение не запрашивалось.
type StorytellingResponse struct {
	Content string     `json:"content"`
	Saved   *bool      `json:"saved,omitempty"`
	StoryID *uuid.UUID `json:"storyId,omitempty"`
	Message string     `json:"message,omitempty"`
}

type GeneratePortfolioResponse struct {
	Success  bool                      `json:"success"`
	Sections []models.PortfolioSection `json:"sections"`
}

type GitHubReposResponse struct {
	Success bool          `json:"success"`
	Repos   []github.Repo `json:"repos"`
}

type GitHubImportResponse struct {
	Success bool `json:"success"`
	Synced  int  `json:"synced"`
	Skipped int  `json:"skipped"`
	Errors  int  `json:"errors"`
}

type StoriesResponse struct {
	Stories []models.Story `json:"stories"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}
