package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotConfigured возвращается, если ключ AI шлюза не задан.
	ErrNotConfigured = errors.New("ai: ключ API не задан")
	// ErrEmptyContent возвращается, если шлюз ответил без текста.
	ErrEmptyContent = errors.New("ai: пустой ответ")
)

// UpstreamError ответ шлюза с кодом не 2xx. Body хранится как есть для логов и details.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ai: код ответа %d: %s", e.StatusCode, e.Body)
}

// Message одно сообщение диалога chat/completions.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest параметры одного запроса к шлюзу.
type ChatRequest struct {
	Messages    []Message
	Temperature *float64
	// JSONMode просит шлюз вернуть один JSON объект (response_format json_object).
	JSONMode bool
}

// Client клиент OpenAI-совместимого шлюза chat/completions.
type Client struct {
	baseURL      string
	apiKey       string
	model        string
	httpClient   *http.Client
	streamClient *http.Client
}

// NewClient создаёт экземпляр клиента.
func NewClient(baseURL, model, apiKey string, timeout time.Duration) *Client {
	if model == "" {
		model = "google/gemini-2.5-flash"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		// Стрим живёт столько, сколько идёт генерация; ограничиваем только ожидание заголовков.
		streamClient: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: timeout,
			},
		},
	}
}

// Configured сообщает, задан ли ключ API.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Model возвращает имя модели, с которой работает клиент.
func (c *Client) Model() string {
	return c.model
}

// ChatCompletion выполняет запрос без стриминга и возвращает choices[0].message.content.
func (c *Client) ChatCompletion(ctx context.Context, in ChatRequest) (string, error) {
	resp, err := c.do(ctx, c.httpClient, in, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("ai: не удалось разобрать ответ: %w", err)
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", ErrEmptyContent
	}

	return result.Choices[0].Message.Content, nil
}

// StreamCompletion выполняет запрос со stream=true и возвращает тело ответа шлюза
// без изменений (text/event-stream). Закрыть тело обязан вызывающий.
func (c *Client) StreamCompletion(ctx context.Context, in ChatRequest) (io.ReadCloser, error) {
	resp, err := c.do(ctx, c.streamClient, in, true)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// do отправляет запрос и превращает ответ не 2xx в UpstreamError.
func (c *Client) do(ctx context.Context, hc *http.Client, in ChatRequest, stream bool) (*http.Response, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if c.baseURL == "" {
		return nil, fmt.Errorf("ai: baseURL не задан")
	}

	payload := map[string]any{
		"model":    c.model,
		"messages": in.Messages,
		"stream":   stream,
	}
	if in.Temperature != nil {
		payload["temperature"] = *in.Temperature
	}
	if in.JSONMode {
		payload["response_format"] = map[string]string{"type": "json_object"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := c.baseURL
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	url += "chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai: запрос к шлюзу: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return resp, nil
}

// Float возвращает указатель на значение, удобно для ChatRequest.Temperature.
func Float(v float64) *float64 {
	return &v
}
