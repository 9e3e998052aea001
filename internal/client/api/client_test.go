package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/focuskeeper/internal/retry"
	"github.com/iudanet/focuskeeper/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL, "key")

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.Equal(t, "key", client.apiKey)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// TestClient_PushItem проверяет успешную отправку мутации
func TestClient_PushItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Проверяем метод, путь и заголовки
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, api.PathSync, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret-key", r.Header.Get(api.HeaderAPIKey))

		var req api.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "work_session", req.EntityType)
		assert.Equal(t, "CREATE", req.Operation)
		assert.JSONEq(t, `{"id":"ws-1"}`, string(req.Payload))

		_ = json.NewEncoder(w).Encode(api.PushResponse{
			Success: true,
			Data:    &api.PushResult{EntityType: "work_session", EntityID: "ws-1", Operation: "CREATE", Applied: true},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key")
	resp, err := client.PushItem(context.Background(), api.PushRequest{
		EntityType: "work_session",
		Operation:  "CREATE",
		Payload:    json.RawMessage(`{"id":"ws-1"}`),
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.True(t, resp.Data.Applied)
}

// TestClient_PushItem_Errors проверяет классификацию ошибок сервера
func TestClient_PushItem_Errors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         any
		expectedType retry.ErrorType
		expectedCode string
	}{
		{
			name:         "missing key",
			status:       http.StatusUnauthorized,
			body:         api.ErrorResponse{Error: api.MsgAPIKeyRequired},
			expectedType: retry.ErrorAuth,
		},
		{
			name:         "forbidden",
			status:       http.StatusForbidden,
			body:         api.ErrorResponse{Error: "user mismatch", Code: api.CodeAccessDenied},
			expectedType: retry.ErrorAuth,
			expectedCode: api.CodeAccessDenied,
		},
		{
			name:         "bad request",
			status:       http.StatusBadRequest,
			body:         api.ErrorResponse{Error: "unknown entity type", Code: api.CodeValidation},
			expectedType: retry.ErrorClient,
			expectedCode: api.CodeValidation,
		},
		{
			name:         "server error with plain body",
			status:       http.StatusInternalServerError,
			body:         "oops",
			expectedType: retry.ErrorServer,
		},
		{
			name:         "success false on 200",
			status:       http.StatusOK,
			body:         api.PushResponse{Success: false, Error: "something odd"},
			expectedType: retry.ErrorUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if s, ok := tt.body.(string); ok {
					_, _ = w.Write([]byte(s))
					return
				}
				_ = json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			client := NewClient(server.URL, "k")
			resp, err := client.PushItem(context.Background(), api.PushRequest{EntityType: "project", Payload: json.RawMessage(`{}`)})

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tt.expectedType, retry.Classify(err))

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode())
			assert.Equal(t, tt.expectedCode, se.ErrorCode())
		})
	}
}

// TestClient_RateLimitHint проверяет разбор подсказки о сбросе лимита
func TestClient_RateLimitHint(t *testing.T) {
	reset := time.Now().Add(30 * time.Second).Truncate(time.Second)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(api.HeaderRetryAfter, "30")
		w.Header().Set(api.HeaderRateLimitReset, strconv.FormatInt(reset.Unix(), 10))
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "rate limit exceeded", Code: api.CodeThrottling})
	}))
	defer server.Close()

	client := NewClient(server.URL, "k")
	_, err := client.PushItem(context.Background(), api.PushRequest{EntityType: "project", Payload: json.RawMessage(`{}`)})

	require.Error(t, err)
	assert.Equal(t, retry.ErrorRateLimit, retry.Classify(err))

	at, ok := retry.RateLimitReset(err)
	require.True(t, ok)
	assert.True(t, reset.Equal(at))
}

func TestParseRetryHint(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		headers  map[string]string
		expected time.Time
	}{
		{name: "none", headers: nil, expected: time.Time{}},
		{name: "retry after seconds", headers: map[string]string{api.HeaderRetryAfter: "10"}, expected: now.Add(10 * time.Second)},
		{name: "retry after date", headers: map[string]string{api.HeaderRetryAfter: "Sun, 01 Mar 2026 12:01:00 GMT"}, expected: now.Add(time.Minute)},
		{name: "reset wins", headers: map[string]string{api.HeaderRetryAfter: "10", api.HeaderRateLimitReset: strconv.FormatInt(now.Add(time.Hour).Unix(), 10)}, expected: now.Add(time.Hour)},
		{name: "garbage", headers: map[string]string{api.HeaderRetryAfter: "soon"}, expected: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			got := parseRetryHint(h, now)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}

// TestClient_Pull проверяет параметры запроса и разбор снимка
func TestClient_Pull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, api.PathPull, r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("userId"))
		assert.Equal(t, "2026-03-01T12:00:00Z", r.URL.Query().Get("lastSyncTime"))

		_ = json.NewEncoder(w).Encode(api.PullResponse{
			Success:   true,
			SyncTime:  "2026-03-01T12:05:00Z",
			ItemCount: 1,
			Data: api.PullData{
				Projects: []json.RawMessage{json.RawMessage(`{"id":"p1"}`)},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "k")
	resp, err := client.Pull(context.Background(), "u1", "2026-03-01T12:00:00Z")

	require.NoError(t, err)
	assert.Equal(t, "2026-03-01T12:05:00Z", resp.SyncTime)
	assert.Equal(t, 1, resp.Data.Count())
}

func TestClient_Pull_FirstSyncOmitsWatermark(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["lastSyncTime"]
		assert.False(t, present)
		_ = json.NewEncoder(w).Encode(api.PullResponse{Success: true})
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "k").Pull(context.Background(), "u1", "")
	require.NoError(t, err)
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathHealth, r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
	}))

	client := NewClient(server.URL, "")
	require.NoError(t, client.Ping(context.Background()))

	// Сервер недоступен - сетевая ошибка
	server.Close()
	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Equal(t, retry.ErrorNetwork, retry.Classify(err))
}
