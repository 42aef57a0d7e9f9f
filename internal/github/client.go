// Package github читает публичные репозитории пользователя через GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const userAgent = "Promptfolio-Universe"

// Repo поля репозитория, которые нужны для импорта в проекты.
type Repo struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	HTMLURL         string  `json:"html_url"`
	Homepage        *string `json:"homepage"`
	Language        *string `json:"language"`
	StargazersCount int     `json:"stargazers_count"`
	Fork            bool    `json:"fork"`
}

// APIError ответ GitHub с кодом не 2xx. Body содержит разобранное тело или пустой объект.
type APIError struct {
	StatusCode int
	Body       any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error: %d", e.StatusCode)
}

// Client клиент GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient создаёт клиент. Пустой token означает анонимные запросы с низким лимитом.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListUserRepos возвращает до 100 репозиториев пользователя, недавно обновлённые первыми.
func (c *Client) ListUserRepos(ctx context.Context, username string) ([]Repo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=100", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: запрос репозиториев: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: decodeErrorBody(resp.Body)}
	}

	repos := make([]Repo, 0)
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("github: не удалось разобрать ответ: %w", err)
	}
	return repos, nil
}

// decodeErrorBody разбирает тело ошибки; нечитаемое тело заменяется пустым объектом.
func decodeErrorBody(r io.Reader) any {
	var body any
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil || body == nil {
		return map[string]any{}
	}
	return body
}
