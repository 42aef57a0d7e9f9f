package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/promptfolio-backend/internal/dto"
	"github.com/ignatzorin/promptfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/promptfolio-backend/internal/models"
	"github.com/ignatzorin/promptfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/promptfolio-backend/internal/service"
	"github.com/ignatzorin/promptfolio-backend/internal/validation"
)

var (
	errPortfolioIDRequired = apperror.New(apperror.ErrCodeBadRequest, "portfolioId is required")
	errPortfolioIDInvalid  = apperror.New(apperror.ErrCodeBadRequest, "portfolioId must be a valid UUID")
)

type portfolioGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, req service.GenerateRequest) ([]models.PortfolioSection, error)
}

type portfolioReader interface {
	GetView(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*models.PortfolioView, error)
}

// PortfolioHandler обслуживает маршруты портфолио.
type PortfolioHandler struct {
	generator portfolioGenerator
	reader    portfolioReader
}

// NewPortfolioHandler создаёт новый хэндлер.
func NewPortfolioHandler(generator portfolioGenerator, reader portfolioReader) *PortfolioHandler {
	return &PortfolioHandler{generator: generator, reader: reader}
}

// Generate обрабатывает POST /functions/v1/generate-portfolio.
func (h *PortfolioHandler) Generate(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		_ = c.Error(apperror.ErrUnauthorized)
		return
	}

	var req dto.GeneratePortfolioRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.PortfolioID == "" {
		_ = c.Error(errPortfolioIDRequired)
		return
	}
	portfolioID, err := uuid.Parse(req.PortfolioID)
	if err != nil {
		_ = c.Error(errPortfolioIDInvalid)
		return
	}

	if err := validation.ValidateLanguage(req.Language); err != nil {
		_ = c.Error(apperror.New(apperror.ErrCodeValidation, err.Error()))
		return
	}
	if err := validation.ValidateImageURLs(req.Images); err != nil {
		_ = c.Error(apperror.New(apperror.ErrCodeValidation, err.Error()))
		return
	}

	sections, err := h.generator.Generate(c.Request.Context(), userID, service.GenerateRequest{
		PortfolioID: portfolioID,
		Prompt:      req.Prompt,
		TemplateID:  req.TemplateID,
		Language:    req.Language,
		Images:      req.Images,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.GeneratePortfolioResponse{Success: true, Sections: sections})
}

// GetPortfolio обрабатывает GET /api/portfolios/:id.
// Опубликованное портфолио видно всем, черновик только владельцу.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		_ = c.Error(errPortfolioIDInvalid)
		return
	}

	view, err := h.reader.GetView(c.Request.Context(), id, common.OptionalUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, view)
}
