package middleware

import (
	"net/http"

	"github.com/pribylovaa/celebrations-service/internal/api"
	logctx "github.com/pribylovaa/celebrations-service/pkg/log"
)

// Caller определяет вызывающего по X-Roster-Person-Id (иначе — defaultID из конфигурации)
// и кладёт его в контекст. Подключается после Logging: дописывает caller в request-scoped логгер.
func Caller(defaultID string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := api.CallerFromHeader(r.Header, defaultID)

			ctx := api.WithCaller(r.Context(), caller)
			if caller.PersonID != "" {
				ctx = logctx.Into(ctx, logctx.From(ctx).With("caller", caller.PersonID))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
