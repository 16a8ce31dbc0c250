// Package deadline навешивает сервисный таймаут на контекст запроса.
package deadline

import (
	"context"
	"time"
)

// Ensure возвращает контекст с таймаутом d, если у входящего контекста ещё нет дедлайна.
//
// Контракт:
//  1. d <= 0 — контекст не меняется;
//  2. дедлайн уже задан — не переопределяется;
//  3. иначе — context.WithTimeout(ctx, d).
//
// Возвращённый cancel всегда безопасно вызывать.
func Ensure(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}

	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, d)
}
