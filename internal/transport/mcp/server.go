// MCP-транспорт celebrations-service: пять инструментов поверх api.API.
//
// Маппинг ошибок:
//
//	ошибка ядра -> api.ToStatus -> tool error (IsError=true) с текстом "<Code>: <message>"
//
// Вызывающий берётся из заголовка X-Roster-Person-Id (streamable HTTP),
// иначе — из caller.default_person_id (stdio, локальная отладка).
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pribylovaa/celebrations-service/internal/api"
	"github.com/pribylovaa/celebrations-service/internal/metrics"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/pkg/deadline"
	"github.com/pribylovaa/celebrations-service/pkg/log"
	"google.golang.org/grpc/codes"
)

// Имя и версия, под которыми сервер представляется клиентам MCP.
const (
	serverName    = "celebrations-service"
	serverVersion = "1.0.0"
)

// Options — зависимости и параметры MCP-сервера.
type Options struct {
	Logger *slog.Logger
	// Metrics — необязательные метрики вызовов инструментов.
	Metrics *metrics.Metrics
	// DefaultCallerID — вызывающий, если транспорт не передал заголовок.
	DefaultCallerID string
	// Timeout — сервисный дедлайн вызова, если у контекста его нет.
	Timeout time.Duration
}

// Server — MCP-сервер с зарегистрированными инструментами.
type Server struct {
	api     *api.API
	server  *mcp.Server
	log     *slog.Logger
	metrics *metrics.Metrics
	caller  string
	timeout time.Duration
}

// NewServer создаёт MCP-сервер и регистрирует инструменты.
func NewServer(a *api.API, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		api:     a,
		server:  mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil),
		log:     opts.Logger,
		metrics: opts.Metrics,
		caller:  opts.DefaultCallerID,
		timeout: opts.Timeout,
	}

	s.registerTools()
	return s
}

// MCP возвращает низкоуровневый сервер (для подключения произвольного транспорта).
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Run обслуживает MCP по stdin/stdout до отмены ctx или закрытия потока.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler — streamable HTTP-обработчик для монтирования в роутер.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.server }, nil)
}

// callerOf определяет вызывающего по заголовкам запроса MCP.
func (s *Server) callerOf(req *mcp.CallToolRequest) models.Caller {
	if req != nil && req.Extra != nil {
		return api.CallerFromHeader(req.Extra.Header, s.caller)
	}

	return api.CallerFromHeader(nil, s.caller)
}

// handle — общая обёртка инструмента: вызывающий, дедлайн, логирование, метрики, маппинг ошибок.
// Выход типизирован как any: ветки комментариев рекурсивны, схема выхода не публикуется.
func handle[In any](s *Server, tool string, call func(context.Context, models.Caller, In) (any, error)) mcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		caller := s.callerOf(req)

		lg := s.log.With("tool", tool, "caller", caller.PersonID)
		ctx = log.Into(ctx, lg)

		ctx, cancel := deadline.Ensure(ctx, s.timeout)
		defer cancel()

		out, err := call(ctx, caller, in)
		st := api.ToStatus(err)
		dur := time.Since(start)
		s.metrics.ObserveTool(tool, st.Code().String(), dur)

		if err != nil {
			level := slog.LevelWarn
			if st.Code() == codes.Internal {
				level = slog.LevelError
			}
			lg.Log(ctx, level, "tool failed", "code", st.Code().String(), "dur", dur)

			return nil, nil, fmt.Errorf("%s: %s", st.Code(), st.Message())
		}

		lg.Info("tool", "code", st.Code().String(), "dur", dur)
		return nil, out, nil
	}
}
