package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken токен не прошёл проверку.
var ErrInvalidToken = errors.New("token: невалиден")

// TokenVerifier проверяет access токен сервиса авторизации и возвращает идентификатор пользователя.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

// NewTokenVerifier выбирает способ проверки: локально по секрету, если он задан,
// иначе запросом в сервис авторизации. Без настроек все токены отклоняются.
func NewTokenVerifier(jwtSecret, authURL, anonKey string, timeout time.Duration) TokenVerifier {
	switch {
	case jwtSecret != "":
		return NewJWTVerifier(jwtSecret)
	case authURL != "" && anonKey != "":
		return NewRemoteUserVerifier(authURL, anonKey, timeout)
	default:
		return rejectAllVerifier{}
	}
}

// JWTVerifier проверяет HS256 токены по общему секрету.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify извлекает userID из claim sub.
func (v *JWTVerifier) Verify(_ context.Context, token string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, fmt.Errorf("%w: нет sub", ErrInvalidToken)
	}

	userID, err := uuid.Parse(sub)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: sub не uuid", ErrInvalidToken)
	}

	return userID, nil
}

// RemoteUserVerifier проверяет токен запросом GET {authURL}/auth/v1/user.
type RemoteUserVerifier struct {
	authURL    string
	anonKey    string
	httpClient *http.Client
}

func NewRemoteUserVerifier(authURL, anonKey string, timeout time.Duration) *RemoteUserVerifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteUserVerifier{
		authURL:    strings.TrimRight(authURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (v *RemoteUserVerifier) Verify(ctx context.Context, token string) (uuid.UUID, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.authURL+"/auth/v1/user", nil)
	if err != nil {
		return uuid.Nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.anonKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token: запрос к сервису авторизации: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return uuid.Nil, fmt.Errorf("%w: код ответа %d", ErrInvalidToken, resp.StatusCode)
	}

	var user struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return uuid.Nil, fmt.Errorf("token: не удалось разобрать пользователя: %w", err)
	}

	userID, err := uuid.Parse(user.ID)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: некорректный id пользователя", ErrInvalidToken)
	}
	return userID, nil
}

type rejectAllVerifier struct{}

func (rejectAllVerifier) Verify(context.Context, string) (uuid.UUID, error) {
	return uuid.Nil, fmt.Errorf("%w: проверка токенов не настроена", ErrInvalidToken)
}
