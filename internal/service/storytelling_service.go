package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/promptfolio-backend/internal/ai"
	"github.com/ignatzorin/promptfolio-backend/internal/logger"
	"github.com/ignatzorin/promptfolio-backend/internal/models"
	"github.com/ignatzorin/promptfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/promptfolio-backend/internal/validation"
)

const defaultStoryTitle = "Untitled Story"

var (
	errPromptRequired = apperror.New(apperror.ErrCodeBadRequest, "Prompt is required")
	errPromptEmpty    = apperror.New(apperror.ErrCodeBadRequest, "Prompt empty after sanitization")
	errNoContent      = apperror.New(apperror.ErrCodeUpstream, "No content generated")
)

// StoryRequest запрос на генерацию истории.
type StoryRequest struct {
	Prompt   string
	Save     bool
	Title    string
	IsPublic bool
	// UserID пустой для анонимных запросов: такие истории не сохраняются.
	UserID *uuid.UUID
}

// StoryResult результат генерации. Saved не nil, только если сохранение запрашивалось.
type StoryResult struct {
	Content string
	Saved   *bool
	StoryID *uuid.UUID
	Message string
}

// StorytellingService генерирует истории через AI шлюз.
type StorytellingService struct {
	ai      ChatClient
	stories StoryStore
}

func NewStorytellingService(client ChatClient, stories StoryStore) *StorytellingService {
	return &StorytellingService{ai: client, stories: stories}
}

// PreparePrompt проверяет и очищает пользовательский запрос.
func (s *StorytellingService) PreparePrompt(raw string) (string, error) {
	if raw == "" {
		return "", errPromptRequired
	}
	prompt := validation.SanitizePrompt(raw)
	if prompt == "" {
		return "", errPromptEmpty
	}
	return prompt, nil
}

// Generate выполняет запрос без стриминга и при необходимости сохраняет историю.
func (s *StorytellingService) Generate(ctx context.Context, req StoryRequest) (*StoryResult, error) {
	prompt, err := s.PreparePrompt(req.Prompt)
	if err != nil {
		return nil, err
	}
	if !s.ai.Configured() {
		return nil, apperror.ErrAINotConfigured
	}

	content, err := s.ai.ChatCompletion(ctx, ai.ChatRequest{Messages: ai.BuildStorytellingMessages(prompt)})
	if err != nil {
		if errors.Is(err, ai.ErrEmptyContent) {
			return nil, errNoContent
		}
		return nil, storyUpstreamError(err)
	}

	result := &StoryResult{Content: content}
	if !req.Save || req.UserID == nil {
		return result, nil
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultStoryTitle
	}

	story := &models.Story{
		UserID:     *req.UserID,
		Title:      title,
		Content:    content,
		PromptUsed: prompt,
		IsPublic:   req.IsPublic,
	}

	saved := true
	if err := s.stories.Create(ctx, story); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"user_id": req.UserID.String(),
			"error":   err.Error(),
		}).Error("ai-storytelling: не удалось сохранить историю")

		saved = false
		result.Saved = &saved
		result.Message = "Failed to save story"
		return result, nil
	}

	result.Saved = &saved
	result.StoryID = &story.ID
	return result, nil
}

// Stream открывает потоковую генерацию. Тело ответа шлюза отдаётся без изменений.
func (s *StorytellingService) Stream(ctx context.Context, rawPrompt string) (io.ReadCloser, error) {
	prompt, err := s.PreparePrompt(rawPrompt)
	if err != nil {
		return nil, err
	}
	if !s.ai.Configured() {
		return nil, apperror.ErrAINotConfigured
	}

	body, err := s.ai.StreamCompletion(ctx, ai.ChatRequest{Messages: ai.BuildStorytellingMessages(prompt)})
	if err != nil {
		return nil, storyUpstreamError(err)
	}
	return body, nil
}

// ListStories возвращает сохранённые истории пользователя.
func (s *StorytellingService) ListStories(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Story, error) {
	stories, err := s.stories.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to load stories")
	}
	return stories, nil
}
