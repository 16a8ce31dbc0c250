package handlers

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	logctx "github.com/pribylovaa/celebrations-service/pkg/log"
)

// Pinger — зависимость, доступность которой проверяет /healthz (MongoDB, PostgreSQL, Redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health — liveness/readiness ручки.
// Ready выставляет main после инициализации и снимает перед остановкой.
type Health struct {
	Ready  *atomic.Bool
	Checks map[string]Pinger

	// Timeout — дедлайн одной проверки зависимостей.
	Timeout time.Duration
}

// Livez — процесс жив.
func (h *Health) Livez(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Healthz — сервис готов принимать трафик: флаг готовности и пинг зависимостей.
func (h *Health) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.Ready == nil || !h.Ready.Load() {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	for name, p := range h.Checks {
		if err := p.Ping(ctx); err != nil {
			logctx.From(r.Context()).Warn("dependency_unhealthy", "dependency", name, "err", err.Error())
			http.Error(w, name+" unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
