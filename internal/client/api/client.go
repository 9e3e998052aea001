package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/focuskeeper/pkg/api"
)

//go:generate moq -out client_mock.go . SyncAPI

// SyncAPI is the remote surface the sync engines talk to.
type SyncAPI interface {
	// PushItem отправляет одну мутацию на сервер
	PushItem(ctx context.Context, req api.PushRequest) (*api.PushResponse, error)

	// Pull получает снимок данных пользователя начиная с lastSyncTime
	Pull(ctx context.Context, userID, lastSyncTime string) (*api.PullResponse, error)

	// Ping проверяет доступность сервера
	Ping(ctx context.Context) error
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	now        func() time.Time
	baseURL    string
	apiKey     string
}

var _ SyncAPI = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		now:     time.Now,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем ключ доступа при редиректе
				if len(via) > 0 && via[0].Header.Get(api.HeaderAPIKey) != "" {
					req.Header.Set(api.HeaderAPIKey, via[0].Header.Get(api.HeaderAPIKey))
				}
				return nil
			},
		},
	}
}

// PushItem отправляет одну мутацию на сервер
func (c *Client) PushItem(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
	var resp api.PushResponse
	if err := c.doRequest(ctx, http.MethodPost, api.PathSync, req, &resp); err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("push request failed: %w", &StatusError{Status: http.StatusOK, Message: resp.Error})
	}
	return &resp, nil
}

// Pull получает снимок данных пользователя
func (c *Client) Pull(ctx context.Context, userID, lastSyncTime string) (*api.PullResponse, error) {
	query := url.Values{}
	query.Set("userId", userID)
	if lastSyncTime != "" {
		query.Set("lastSyncTime", lastSyncTime)
	}

	var resp api.PullResponse
	if err := c.doRequest(ctx, http.MethodGet, api.PathPull+"?"+query.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("pull request failed: %w", &StatusError{Status: http.StatusOK, Message: "server reported failure"})
	}
	return &resp, nil
}

// Ping проверяет доступность сервера
func (c *Client) Ping(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, api.PathHealth, nil, &resp); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(api.HeaderAPIKey, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{
			Status:     resp.StatusCode,
			Message:    string(respBody),
			RetryAfter: parseRetryHint(resp.Header, c.now()),
		}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			statusErr.Message = errResp.Error
			statusErr.Code = errResp.Code
		}
		return statusErr
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// parseRetryHint читает X-RateLimit-Reset (unix секунды) или Retry-After
func parseRetryHint(h http.Header, now time.Time) time.Time {
	if v := h.Get(api.HeaderRateLimitReset); v != "" {
		if sec, err := strconv.ParseInt(v, 10, 64); err == nil && sec > 0 {
			return time.Unix(sec, 0)
		}
	}

	if v := h.Get(api.HeaderRetryAfter); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec >= 0 {
			return now.Add(time.Duration(sec) * time.Second)
		}
		if at, err := http.ParseTime(v); err == nil {
			return at
		}
	}

	return time.Time{}
}
