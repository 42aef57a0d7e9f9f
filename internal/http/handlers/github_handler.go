package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/promptfolio-backend/internal/dto"
	"github.com/ignatzorin/promptfolio-backend/internal/github"
	"github.com/ignatzorin/promptfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/promptfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/promptfolio-backend/internal/service"
)

type githubSyncer interface {
	ListRepos(ctx context.Context, userID uuid.UUID) ([]github.Repo, error)
	Import(ctx context.Context, userID uuid.UUID, repoIDs []int64) (*service.ImportResult, error)
}

// GitHubHandler обслуживает синхронизацию с GitHub.
type GitHubHandler struct {
	sync githubSyncer
}

func NewGitHubHandler(sync githubSyncer) *GitHubHandler {
	return &GitHubHandler{sync: sync}
}

// ListRepos обрабатывает POST /functions/v1/github-sync.
func (h *GitHubHandler) ListRepos(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		_ = c.Error(apperror.ErrUnauthorized)
		return
	}

	repos, err := h.sync.ListRepos(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if repos == nil {
		repos = []github.Repo{}
	}

	c.JSON(http.StatusOK, dto.GitHubReposResponse{Success: true, Repos: repos})
}

// Import обрабатывает POST /functions/v1/github-import.
func (h *GitHubHandler) Import(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		_ = c.Error(apperror.ErrUnauthorized)
		return
	}

	var req dto.GitHubImportRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.sync.Import(c.Request.Context(), userID, req.RepoIDs)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.GitHubImportResponse{
		Success: true,
		Synced:  res.Synced,
		Skipped: res.Skipped,
		Errors:  res.Errors,
	})
}
