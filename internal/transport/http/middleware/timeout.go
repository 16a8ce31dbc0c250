package middleware

import (
	"net/http"
	"time"

	"github.com/pribylovaa/celebrations-service/pkg/deadline"
)

// Timeout ограничивает запрос к JSON API бюджетом timeouts.service
// через deadline.Ensure, как и вызовы MCP-инструментов: уже заданный deadline не продлевается.
// При d <= 0 запрос проходит без ограничения.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := deadline.Ensure(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
