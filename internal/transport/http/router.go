package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/celebrations-service/internal/api"
	"github.com/pribylovaa/celebrations-service/internal/metrics"
	"github.com/pribylovaa/celebrations-service/internal/transport/http/handlers"
	"github.com/pribylovaa/celebrations-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// BasePath — префикс JSON API, например "/api/v1"; если пустой — ручки регистрируются на корне.
	BasePath string
	// DefaultCallerID — вызывающий, если нет заголовка X-Roster-Person-Id.
	DefaultCallerID string

	// MCP — streamable HTTP обработчик MCP-сервера; nil — не монтируется (режим stdio).
	MCP     http.Handler
	MCPPath string

	Metrics *metrics.Metrics
	Health  *handlers.Health
}

// NewRouter собирает http.Handler с chi: JSON API, MCP, health и metrics.
func NewRouter(a *api.API, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),             // безопасно ловим паники
		middleware.RequestID(),           // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Metrics(opts.Metrics), // считаем по шаблону маршрута
		middleware.Logging(opts.Logger),  // кладём request-scoped логгер в контекст и логируем
	)

	// Служебные ручки — без вызывающего и без таймаута.
	if opts.Health != nil {
		root.Get("/livez", opts.Health.Livez)
		root.Get("/healthz", opts.Health.Healthz)
	}
	if opts.Metrics != nil {
		root.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	// Таймаут MCP навешивает сам на каждый вызов инструмента: сессия streamable HTTP долгоживущая.
	if opts.MCP != nil && opts.MCPPath != "" {
		root.Handle(opts.MCPPath, opts.MCP)
	}

	if a == nil {
		return root
	}

	h := handlers.New(a)

	apiRouter := chi.NewRouter()
	apiRouter.Use(middleware.Caller(opts.DefaultCallerID))
	if opts.Timeout > 0 {
		apiRouter.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}
	registerRoutes(apiRouter, h)

	base := opts.BasePath
	if base == "" {
		base = "/"
	}
	root.Mount(base, apiRouter)

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
// Имена ручек совпадают с именами MCP-инструментов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	r.Post("/search", h.Search)
	r.Post("/celebration_contributions", h.Contributions)
	r.Post("/comment", h.Comment)
	r.Post("/invite", h.Invite)
	r.Post("/find_invitees", h.FindInvitees)
}
