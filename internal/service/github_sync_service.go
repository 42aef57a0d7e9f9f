package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/promptfolio-backend/internal/github"
	"github.com/ignatzorin/promptfolio-backend/internal/logger"
	"github.com/ignatzorin/promptfolio-backend/internal/models"
	"github.com/ignatzorin/promptfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/promptfolio-backend/internal/repository"
)

// ImportResult итог импорта репозиториев.
type ImportResult struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// GitHubSyncService показывает репозитории пользователя и импортирует их в проекты.
type GitHubSyncService struct {
	profiles ProfileStore
	projects ProjectStore
	github   RepoLister
}

func NewGitHubSyncService(profiles ProfileStore, projects ProjectStore, gh RepoLister) *GitHubSyncService {
	return &GitHubSyncService{profiles: profiles, projects: projects, github: gh}
}

// ListRepos возвращает репозитории для выбора на клиенте. Ничего не пишет.
func (s *GitHubSyncService) ListRepos(ctx context.Context, userID uuid.UUID) ([]github.Repo, error) {
	username, err := s.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	repos, err := s.github.ListUserRepos(ctx, username)
	if err != nil {
		return nil, githubError(err)
	}
	return repos, nil
}

// Import создаёт проекты из репозиториев, не являющихся форками.
// Пустой repoIDs означает все репозитории. Уже импортированные пропускаются.
func (s *GitHubSyncService) Import(ctx context.Context, userID uuid.UUID, repoIDs []int64) (*ImportResult, error) {
	username, err := s.username(ctx, userID)
	if err != nil {
		return nil, err
	}

	repos, err := s.github.ListUserRepos(ctx, username)
	if err != nil {
		return nil, githubError(err)
	}

	selected := make(map[int64]struct{}, len(repoIDs))
	for _, id := range repoIDs {
		selected[id] = struct{}{}
	}

	log := logger.Log.WithField("user_id", userID.String())
	result := &ImportResult{}

	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		if len(selected) > 0 {
			if _, ok := selected[repo.ID]; !ok {
				continue
			}
		}

		project := ProjectFromRepo(userID, repo)
		created, err := s.projects.CreateIfAbsent(ctx, project)
		switch {
		case err != nil:
			result.Errors++
			log.WithFields(logrus.Fields{
				"repo":  repo.HTMLURL,
				"error": err.Error(),
			}).Error("github-import: не удалось сохранить проект")
		case created:
			result.Synced++
		default:
			result.Skipped++
		}
	}

	log.WithFields(logrus.Fields{
		"synced":  result.Synced,
		"skipped": result.Skipped,
		"errors":  result.Errors,
	}).Info("github-import: импорт завершён")

	return result, nil
}

// username возвращает github_username из профиля или ошибку "нужна настройка".
func (s *GitHubSyncService) username(ctx context.Context, userID uuid.UUID) (string, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return "", apperror.ErrGitHubNotConfigured
		}
		return "", apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to load profile")
	}

	if profile.GitHubUsername == nil || strings.TrimSpace(*profile.GitHubUsername) == "" {
		return "", apperror.ErrGitHubNotConfigured
	}
	return strings.TrimSpace(*profile.GitHubUsername), nil
}

// ProjectFromRepo отображает репозиторий GitHub в проект.
func ProjectFromRepo(userID uuid.UUID, repo github.Repo) *models.Project {
	language := deref(repo.Language)

	description := deref(repo.Description)
	if description == "" {
		kind := language
		if kind == "" {
			kind = "project"
		}
		description = "A " + kind + " repository"
	}

	projectURL := deref(repo.Homepage)
	if projectURL == "" {
		projectURL = repo.HTMLURL
	}

	category := language
	if category == "" {
		category = "Other"
	}

	htmlURL := repo.HTMLURL
	return &models.Project{
		UserID:       userID,
		Title:        repo.Name,
		Description:  description,
		ProjectURL:   projectURL,
		GitHubRepo:   &htmlURL,
		GitHubSynced: true,
		Category:     category,
		IsPublic:     true,
		ImageURL:     "",
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
