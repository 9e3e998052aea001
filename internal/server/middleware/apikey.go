package middleware

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/focuskeeper/internal/server/apikey"
	"github.com/iudanet/focuskeeper/internal/server/handlers"
	"github.com/iudanet/focuskeeper/pkg/api"
)

// KeyValidator проверяет API ключ и возвращает его claims
type KeyValidator interface {
	Validate(key string) (*apikey.Claims, error)
}

// APIKeyMiddleware создает middleware для проверки X-API-Key
func APIKeyMiddleware(logger *slog.Logger, keys KeyValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(api.HeaderAPIKey)
			if key == "" {
				logger.Warn("Missing API key", "path", r.URL.Path)
				handlers.WriteError(w, api.MsgAPIKeyRequired, "", http.StatusUnauthorized)
				return
			}

			claims, err := keys.Validate(key)
			if err != nil {
				logger.Warn("Invalid API key", "path", r.URL.Path, "error", err)
				handlers.WriteError(w, api.MsgInvalidAPIKey, "", http.StatusUnauthorized)
				return
			}

			logger.Debug("Client authenticated", "user_id", claims.UserID)

			next.ServeHTTP(w, r.WithContext(handlers.WithUserID(r.Context(), claims.UserID)))
		})
	}
}
