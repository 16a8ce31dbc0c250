package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	apierrors "github.com/pribylovaa/celebrations-service/internal/transport/http/errors"
	logctx "github.com/pribylovaa/celebrations-service/pkg/log"
)

// Recover ловит panic в обработчике JSON API или /mcp и отвечает 500 с кодом internal.
// http.ErrAbortHandler пробрасывается дальше, чтобы net/http оборвал соединение.
// Причина паники пишется только в лог запроса.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					logctx.From(r.Context()).
						LogAttrs(r.Context(), slog.LevelError, "panic",
							slog.String("path", r.URL.Path),
							slog.Any("reason", rec),
						)
					apierrors.WriteError(w, r, fmt.Errorf("panic: %v", rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
