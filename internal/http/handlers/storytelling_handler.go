package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/promptfolio-backend/internal/dto"
	"github.com/ignatzorin/promptfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/promptfolio-backend/internal/logger"
	"github.com/ignatzorin/promptfolio-backend/internal/models"
	"github.com/ignatzorin/promptfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/promptfolio-backend/internal/service"
	"github.com/ignatzorin/promptfolio-backend/internal/validation"
)

type storyteller interface {
	Generate(ctx context.Context, req service.StoryRequest) (*service.StoryResult, error)
	Stream(ctx context.Context, rawPrompt string) (io.ReadCloser, error)
	ListStories(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Story, error)
}

// StorytellingHandler обслуживает генерацию историй.
type StorytellingHandler struct {
	stories storyteller
}

func NewStorytellingHandler(stories storyteller) *StorytellingHandler {
	return &StorytellingHandler{stories: stories}
}

// Generate обрабатывает POST /functions/v1/ai-storytelling.
// Авторизация необязательна: анонимные истории не сохраняются.
func (h *StorytellingHandler) Generate(c *gin.Context) {
	var req dto.StorytellingRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.SaveStory {
		if err := validation.ValidateStoryTitle(req.Title); err != nil {
			_ = c.Error(apperror.New(apperror.ErrCodeValidation, err.Error()))
			return
		}
	}

	if req.Stream {
		h.stream(c, req.Prompt)
		return
	}

	res, err := h.stories.Generate(c.Request.Context(), service.StoryRequest{
		Prompt:   req.Prompt,
		Save:     req.SaveStory,
		Title:    req.Title,
		IsPublic: req.IsPublic,
		UserID:   common.OptionalUserID(c),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.StorytellingResponse{
		Content: res.Content,
		Saved:   res.Saved,
		StoryID: res.StoryID,
		Message: res.Message,
	})
}

func (h *StorytellingHandler) stream(c *gin.Context, prompt string) {
	body, err := h.stories.Stream(c.Request.Context(), prompt)
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer body.Close()

	if err := pipeEventStream(c, body); err != nil {
		// Клиент отключился или шлюз оборвал поток: статус уже отправлен.
		logger.Log.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		}).Warn("ai-storytelling: поток прерван")
	}
}

// ListStories обрабатывает GET /api/stories.
func (h *StorytellingHandler) ListStories(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	limit, offset := common.GetPagination(c)
	stories, err := h.stories.ListStories(c.Request.Context(), userID, limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if stories == nil {
		stories = []models.Story{}
	}

	c.JSON(http.StatusOK, dto.StoriesResponse{Stories: stories, Limit: limit, Offset: offset})
}
