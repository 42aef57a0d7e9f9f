package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/ignatzorin/promptfolio-backend/internal/ai"
	"github.com/ignatzorin/promptfolio-backend/internal/github"
	"github.com/ignatzorin/promptfolio-backend/internal/models"
)

// PortfolioStore хранилище портфолио и секций.
type PortfolioStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Portfolio, error)
	ListSections(ctx context.Context, portfolioID uuid.UUID) ([]models.PortfolioSection, error)
	InsertSections(ctx context.Context, sections []models.PortfolioSection) ([]models.PortfolioSection, error)
}

type ProjectStore interface {
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Project, error)
	CreateIfAbsent(ctx context.Context, p *models.Project) (bool, error)
}

type StoryStore interface {
	Create(ctx context.Context, s *models.Story) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Story, error)
}

type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// ChatClient AI шлюз.
type ChatClient interface {
	Configured() bool
	ChatCompletion(ctx context.Context, in ai.ChatRequest) (string, error)
	StreamCompletion(ctx context.Context, in ai.ChatRequest) (io.ReadCloser, error)
}

// RepoLister источник репозиториев GitHub.
type RepoLister interface {
	ListUserRepos(ctx context.Context, username string) ([]github.Repo, error)
}
