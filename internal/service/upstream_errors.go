package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/promptfolio-backend/internal/ai"
	"github.com/ignatzorin/promptfolio-backend/internal/github"
	"github.com/ignatzorin/promptfolio-backend/internal/logger"
	"github.com/ignatzorin/promptfolio-backend/internal/pkg/apperror"
)

// storyUpstreamError переводит ошибку AI шлюза в ответ ai-storytelling.
func storyUpstreamError(err error) *apperror.AppError {
	if errors.Is(err, ai.ErrNotConfigured) {
		return apperror.ErrAINotConfigured
	}

	var upstream *ai.UpstreamError
	if !errors.As(err, &upstream) {
		return apperror.Wrap(err, apperror.ErrCodeUpstream, "AI generation failed")
	}

	logger.Log.WithFields(logrus.Fields{
		"status": upstream.StatusCode,
		"body":   upstream.Body,
	}).Error("ai-storytelling: ошибка AI шлюза")

	switch upstream.StatusCode {
	case http.StatusTooManyRequests:
		return apperror.Wrap(err, apperror.ErrCodeRateLimited, "Rate limit exceeded. Please try again later.")
	case http.StatusPaymentRequired:
		return apperror.Wrap(err, apperror.ErrCodePaymentRequired, "Payment required. Please add credits to your workspace.")
	case http.StatusUnauthorized:
		return apperror.Wrap(err, apperror.ErrCodeUnauthorized, "Authentication failed.")
	default:
		return apperror.Wrap(err, apperror.ErrCodeUpstream, "AI generation failed")
	}
}

// portfolioUpstreamError переводит ошибку AI шлюза в ответ generate-portfolio.
func portfolioUpstreamError(err error) *apperror.AppError {
	if errors.Is(err, ai.ErrNotConfigured) {
		return apperror.ErrAINotConfigured
	}

	var upstream *ai.UpstreamError
	if !errors.As(err, &upstream) {
		return apperror.Wrap(err, apperror.ErrCodeUpstream, "AI generation failed").WithDetails(err.Error())
	}

	logger.Log.WithFields(logrus.Fields{
		"status": upstream.StatusCode,
		"body":   upstream.Body,
	}).Error("generate-portfolio: ошибка AI шлюза")

	switch upstream.StatusCode {
	case http.StatusTooManyRequests:
		return apperror.Wrap(err, apperror.ErrCodeRateLimited, "AI service rate limit exceeded. Please try again later.")
	case http.StatusPaymentRequired:
		return apperror.Wrap(err, apperror.ErrCodePaymentRequired, "AI service credits exhausted. Please add credits to continue.")
	case http.StatusUnauthorized:
		return apperror.Wrap(err, apperror.ErrCodeUnauthorized, "Authentication failed.")
	default:
		return apperror.Wrap(err, apperror.ErrCodeUpstream, fmt.Sprintf("AI generation failed: %d", upstream.StatusCode)).
			WithDetails(upstream.Body)
	}
}

// githubError переводит ошибку GitHub API в ответ с исходным статусом.
func githubError(err error) *apperror.AppError {
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return apperror.Wrap(err, apperror.ErrCodeUpstream, apiErr.Error()).
			WithStatus(apiErr.StatusCode).
			WithDetails(apiErr.Body)
	}
	return apperror.Wrap(err, apperror.ErrCodeUpstream, "Failed to fetch GitHub repositories")
}
