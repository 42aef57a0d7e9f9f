package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/promptfolio-backend/internal/models"
	"github.com/ignatzorin/promptfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/promptfolio-backend/internal/repository"
)

// PortfolioService отдаёт портфолио для просмотра.
type PortfolioService struct {
	repo PortfolioStore
}

// NewPortfolioService создаёт новый сервис портфолио.
func NewPortfolioService(repo PortfolioStore) *PortfolioService {
	return &PortfolioService{repo: repo}
}

// GetView возвращает портфолио с секциями. Приватное портфолио видит только владелец;
// viewer равен nil для анонимного запроса.
func (s *PortfolioService) GetView(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*models.PortfolioView, error) {
	portfolio, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioNotFound) {
			return nil, apperror.ErrPortfolioNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to load portfolio")
	}

	if !portfolio.IsPublic && (viewer == nil || *viewer != portfolio.UserID) {
		return nil, apperror.ErrForbidden
	}

	sections, err := s.repo.ListSections(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to load portfolio sections")
	}

	return &models.PortfolioView{Portfolio: *portfolio, Sections: sections}, nil
}
