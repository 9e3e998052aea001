package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/iudanet/focuskeeper/internal/server/handlers"
)

// RecoveryMiddleware создает middleware для восстановления после паники.
// Перехватывает panic, логирует стек вызовов и возвращает 500 в формате ErrorResponse.
// http.ErrAbortHandler пробрасывается дальше: им сервер прерывает ответ намеренно.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}

				logger.Error("Panic recovered",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"stack", string(debug.Stack()),
				)

				// Детали паники клиенту не раскрываем
				handlers.WriteError(w, http.StatusText(http.StatusInternalServerError), "", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
