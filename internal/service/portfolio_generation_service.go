package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/promptfolio-backend/internal/ai"
	"github.com/ignatzorin/promptfolio-backend/internal/logger"
	"github.com/ignatzorin/promptfolio-backend/internal/models"
	"github.com/ignatzorin/promptfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/promptfolio-backend/internal/repository"
	"github.com/ignatzorin/promptfolio-backend/internal/validation"
)

const (
	recentProjectsLimit  = 5
	portfolioTemperature = 0.8
	defaultSectionType   = "about"
)

var errInvalidAIResponse = apperror.New(apperror.ErrCodeInvalidAIResponse, "Invalid AI response format")

// GenerateRequest запрос на генерацию секций портфолио.
type GenerateRequest struct {
	PortfolioID uuid.UUID
	Prompt      string
	TemplateID  string
	Language    string
	Images      []string
}

// PortfolioGenerationService генерирует секции портфолио через AI шлюз.
type PortfolioGenerationService struct {
	portfolios PortfolioStore
	profiles   ProfileStore
	projects   ProjectStore
	ai         ChatClient
	jsonMode   bool
}

func NewPortfolioGenerationService(
	portfolios PortfolioStore,
	profiles ProfileStore,
	projects ProjectStore,
	client ChatClient,
	jsonMode bool,
) *PortfolioGenerationService {
	return &PortfolioGenerationService{
		portfolios: portfolios,
		profiles:   profiles,
		projects:   projects,
		ai:         client,
		jsonMode:   jsonMode,
	}
}

// Generate проверяет владельца, собирает контекст, вызывает модель и сохраняет
// все секции одной транзакцией. При любой ошибке до вставки ничего не пишется.
func (s *PortfolioGenerationService) Generate(ctx context.Context, userID uuid.UUID, req GenerateRequest) ([]models.PortfolioSection, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":      userID.String(),
		"portfolio_id": req.PortfolioID.String(),
	})

	if err := s.authorize(ctx, userID, req.PortfolioID); err != nil {
		return nil, err
	}

	messages := ai.BuildPortfolioMessages(ai.PortfolioPrompt{
		Language:   req.Language,
		TemplateID: req.TemplateID,
		Bio:        s.loadBio(ctx, log, userID),
		Projects:   s.loadProjects(ctx, log, userID),
		UserPrompt: validation.SanitizePrompt(req.Prompt),
	})

	if !s.ai.Configured() {
		return nil, apperror.ErrAINotConfigured
	}

	content, err := s.ai.ChatCompletion(ctx, ai.ChatRequest{
		Messages:    messages,
		Temperature: ai.Float(portfolioTemperature),
		JSONMode:    s.jsonMode,
	})
	if err != nil {
		if errors.Is(err, ai.ErrEmptyContent) {
			return nil, errInvalidAIResponse.WithDetails("No JSON found in response")
		}
		return nil, portfolioUpstreamError(err)
	}

	generated, err := ai.ParseSections(content)
	if err != nil {
		log.WithField("error", err.Error()).Error("generate-portfolio: не удалось разобрать ответ модели")
		if errors.Is(err, ai.ErrInvalidSections) {
			return nil, errInvalidAIResponse.WithDetails("Invalid sections format")
		}
		return nil, errInvalidAIResponse.WithDetails("No JSON found in response")
	}

	rows := BuildSections(req.PortfolioID, generated, req.Images)

	inserted, err := s.portfolios.InsertSections(ctx, rows)
	if err != nil {
		log.WithField("error", err.Error()).Error("generate-portfolio: не удалось сохранить секции")
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to save portfolio sections").
			WithDetails(err.Error())
	}

	log.WithField("sections", len(inserted)).Info("generate-portfolio: секции сохранены")
	return inserted, nil
}

// authorize проверяет, что портфолио существует и принадлежит пользователю.
func (s *PortfolioGenerationService) authorize(ctx context.Context, userID, portfolioID uuid.UUID) error {
	portfolio, err := s.portfolios.GetByID(ctx, portfolioID)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioNotFound) {
			return apperror.ErrPortfolioNotFound
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to load portfolio")
	}
	if portfolio.UserID != userID {
		return apperror.ErrForbidden
	}
	return nil
}

// loadBio возвращает bio профиля. Ошибки чтения не прерывают генерацию.
func (s *PortfolioGenerationService) loadBio(ctx context.Context, log *logrus.Entry, userID uuid.UUID) string {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) {
			log.WithField("error", err.Error()).Warn("generate-portfolio: профиль недоступен")
		}
		return ""
	}
	if profile.Bio == nil {
		return ""
	}
	return *profile.Bio
}

func (s *PortfolioGenerationService) loadProjects(ctx context.Context, log *logrus.Entry, userID uuid.UUID) []models.Project {
	projects, err := s.projects.ListRecent(ctx, userID, recentProjectsLimit)
	if err != nil {
		log.WithField("error", err.Error()).Warn("generate-portfolio: проекты недоступны")
		return nil
	}
	return projects
}

// BuildSections превращает ответ модели в строки portfolio_sections.
// image_url берётся из images[i], затем из ответа модели; order_index равен позиции.
func BuildSections(portfolioID uuid.UUID, generated []ai.GeneratedSection, images []string) []models.PortfolioSection {
	rows := make([]models.PortfolioSection, 0, len(generated))
	for i, g := range generated {
		sectionType := g.SectionType
		if sectionType == "" {
			sectionType = defaultSectionType
		}

		var imageURL *string
		switch {
		case i < len(images) && images[i] != "":
			img := images[i]
			imageURL = &img
		case g.ImageURL != nil && *g.ImageURL != "":
			imageURL = g.ImageURL
		}

		rows = append(rows, models.PortfolioSection{
			PortfolioID: portfolioID,
			SectionType: sectionType,
			Title:       g.Title,
			Content:     g.Content,
			ImageURL:    imageURL,
			OrderIndex:  i,
			Metadata:    models.JSONMap{},
		})
	}
	return rows
}
