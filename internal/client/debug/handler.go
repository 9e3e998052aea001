// Package debug exposes the client sync state and queue controls over HTTP.
package debug

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/iudanet/focuskeeper/internal/client/app"
	fksync "github.com/iudanet/focuskeeper/internal/client/sync"
	"github.com/iudanet/focuskeeper/internal/models"
)

// writeTimeout ограничивает отправку одного снимка по websocket
const writeTimeout = 5 * time.Second

// Handler serves the debug routes of one App.
type Handler struct {
	app    *app.App
	logger *slog.Logger
}

// NewHandler creates a debug handler.
func NewHandler(a *app.App, logger *slog.Logger) *Handler {
	return &Handler{
		app:    a,
		logger: logger,
	}
}

// Routes returns the debug mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/state", h.State)
	mux.HandleFunc("GET /debug/state/stream", h.StateStream)
	mux.HandleFunc("GET /debug/queue", h.Queue)
	mux.HandleFunc("POST /debug/sync", h.Sync)
	mux.HandleFunc("POST /debug/pull", h.Pull)
	mux.HandleFunc("POST /debug/queue/retry", h.RetryFailed)
	mux.HandleFunc("DELETE /debug/queue/failed", h.ClearFailed)
	mux.HandleFunc("DELETE /debug/queue", h.ClearQueue)
	mux.HandleFunc("DELETE /debug/errors", h.ClearErrors)
	return mux
}

// NewServer wraps Routes into an http.Server listening on addr.
func NewServer(addr string, h *Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// State обрабатывает GET /debug/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.app.State.Snapshot())
}

// StateStream обрабатывает GET /debug/state/stream
// Каждое изменение состояния отправляется клиенту как JSON сообщение
func (h *Handler) StateStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.CloseNow()

	// Клиент ничего не присылает, чтение нужно только для обработки close
	ctx := conn.CloseRead(r.Context())

	updates, cancel := h.app.State.Subscribe()
	defer cancel()

	h.logger.Debug("State stream client connected", "remote", r.RemoteAddr)

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.app.Context().Done():
			_ = conn.Close(websocket.StatusGoingAway, "client shutting down")
			return
		case st, ok := <-updates:
			if !ok {
				return
			}
			if err := h.send(ctx, conn, st); err != nil {
				h.logger.Debug("State stream closed", slog.Any("error", err))
				return
			}
		}
	}
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, st fksync.State) error {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, conn, st)
}

// Queue обрабатывает GET /debug/queue
func (h *Handler) Queue(w http.ResponseWriter, r *http.Request) {
	items, err := h.app.Queue.ListAll(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if items == nil {
		items = []*models.SyncQueueItem{}
	}
	h.writeJSON(w, http.StatusOK, items)
}

// Sync обрабатывает POST /debug/sync
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Push.ForceSync(r.Context())
	switch {
	case errors.Is(err, fksync.ErrOffline):
		h.writeError(w, http.StatusServiceUnavailable, err)
	case errors.Is(err, fksync.ErrSyncInProgress):
		h.writeError(w, http.StatusConflict, err)
	case err != nil:
		h.writeError(w, http.StatusInternalServerError, err)
	default:
		h.writeJSON(w, http.StatusOK, result)
	}
}

// pullResponse результат pull с текстом ошибки
type pullResponse struct {
	*fksync.PullResult
	Error string `json:"error,omitempty"`
}

// Pull обрабатывает POST /debug/pull
func (h *Handler) Pull(w http.ResponseWriter, r *http.Request) {
	result := h.app.Pull.PullFromCloud(r.Context(), h.app.Config.UserID)

	resp := pullResponse{PullResult: result}
	status := http.StatusOK
	if result.Err != nil {
		resp.Error = result.Err.Error()
		status = http.StatusBadGateway
	}
	if result.Offline {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, resp)
}

// countResponse число затронутых элементов очереди
type countResponse struct {
	Count int `json:"count"`
}

// RetryFailed обрабатывает POST /debug/queue/retry
func (h *Handler) RetryFailed(w http.ResponseWriter, r *http.Request) {
	n, err := h.app.Push.RetryFailedItems(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// ClearFailed обрабатывает DELETE /debug/queue/failed
func (h *Handler) ClearFailed(w http.ResponseWriter, r *http.Request) {
	n, err := h.app.Push.ClearFailedItems(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// ClearQueue обрабатывает DELETE /debug/queue
func (h *Handler) ClearQueue(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Queue.DeleteAll(r.Context()); err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := h.app.Push.RefreshCounts(r.Context()); err != nil {
		h.logger.Warn("Failed to refresh queue counters", slog.Any("error", err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearErrors обрабатывает DELETE /debug/errors
// Очищает только журнал ошибок, очередь не трогает
func (h *Handler) ClearErrors(w http.ResponseWriter, r *http.Request) {
	h.app.State.ClearErrors()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode debug response", slog.Any("error", err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
