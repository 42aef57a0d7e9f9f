package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest        ErrorCode = "BAD_REQUEST"
	ErrCodeConflict          ErrorCode = "CONFLICT"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError     ErrorCode = "DATABASE_ERROR"
	ErrCodeRateLimited       ErrorCode = "RATE_LIMITED"
	ErrCodePaymentRequired   ErrorCode = "PAYMENT_REQUIRED"
	ErrCodeSetupRequired     ErrorCode = "SETUP_REQUIRED"
	ErrCodeUpstream          ErrorCode = "UPSTREAM_ERROR"
	ErrCodeNotConfigured     ErrorCode = "NOT_CONFIGURED"
	ErrCodeInvalidAIResponse ErrorCode = "INVALID_AI_RESPONSE"
)

// AppError ошибка приложения с HTTP статусом и телом для клиента.
// Message показывается пользователю, Details предназначен разработчику.
type AppError struct {
	Code          ErrorCode
	Message       string
	Details       any
	HTTPStatus    int
	RequiresSetup bool
	Cause         error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails возвращает копию ошибки с полем details.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithStatus возвращает копию ошибки с другим HTTP статусом (проброс статуса внешнего API).
func (e *AppError) WithStatus(status int) *AppError {
	cp := *e
	cp.HTTPStatus = status
	return &cp
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// SetupRequired сообщает клиенту, что нужно заполнить настройки профиля, а не повторять запрос.
func SetupRequired(message string) *AppError {
	e := New(ErrCodeSetupRequired, message)
	e.RequiresSetup = true
	return e
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeSetupRequired:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodePaymentRequired:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// As извлекает AppError из цепочки ошибок.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeForbidden
}

var (
	ErrUnauthorized        = New(ErrCodeUnauthorized, "Unauthorized - missing auth header")
	ErrInvalidToken        = New(ErrCodeUnauthorized, "Authentication failed")
	ErrForbidden           = New(ErrCodeForbidden, "You do not have access to this portfolio")
	ErrPortfolioNotFound   = New(ErrCodeNotFound, "Portfolio not found")
	ErrAINotConfigured     = New(ErrCodeNotConfigured, "AI service not configured")
	ErrRateLimitExceeded   = New(ErrCodeRateLimited, "Rate limit exceeded. Please try again later.")
	ErrGitHubNotConfigured = SetupRequired("GitHub username not configured in profile")
)
