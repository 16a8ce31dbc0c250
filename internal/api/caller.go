package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/pribylovaa/celebrations-service/internal/models"
)

// HeaderCaller — заголовок с roster-идентификатором вызывающего.
const HeaderCaller = "X-Roster-Person-Id"

type callerKey struct{}

// WithCaller кладёт идентичность вызывающего в контекст.
func WithCaller(ctx context.Context, c models.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom достаёт вызывающего из контекста; если его нет — анонимный.
func CallerFrom(ctx context.Context) models.Caller {
	c, _ := ctx.Value(callerKey{}).(models.Caller)
	return c
}

// CallerFromHeader читает вызывающего из заголовков, при отсутствии — fallback из конфигурации.
func CallerFromHeader(h http.Header, fallback string) models.Caller {
	if h != nil {
		if id := strings.TrimSpace(h.Get(HeaderCaller)); id != "" {
			return models.Caller{PersonID: id}
		}
	}

	return models.Caller{PersonID: strings.TrimSpace(fallback)}
}
