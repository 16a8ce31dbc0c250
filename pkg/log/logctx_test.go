package log

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Тесты pkg/log.
//
// Важно: тесты меняют slog.Default(), поэтому намеренно НЕ используют t.Parallel().

func newSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingHandler — минимальный slog.Handler, запоминающий атрибуты последней записи.
// out общий для всех производных (With) обработчиков.
type recordingHandler struct {
	base []slog.Attr
	out  *map[string]any
}

func newRecording() *recordingHandler {
	out := map[string]any{}
	return &recordingHandler{out: &out}
}

func (h *recordingHandler) attrs() map[string]any { return *h.out }

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	got := make(map[string]any, len(h.base))
	for _, a := range h.base {
		got[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		got[a.Key] = a.Value.Any()
		return true
	})
	*h.out = got
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recordingHandler{base: append(append([]slog.Attr{}, h.base...), attrs...), out: h.out}
}

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

func TestFrom_ReturnsDefault_WhenNoLoggerInContext(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	require.Equal(t, def, From(context.Background()))
}

func TestIntoAndFrom_RoundTrip(t *testing.T) {
	l := newSilent()
	ctx := Into(context.Background(), l)

	require.Equal(t, l, From(ctx))
}

// From устойчив к «мусорным» значениям по нашему ключу и к *slog.Logger(nil).
func TestFrom_ReturnsDefault_WhenStoredValueIsWrongTypeOrNil(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	def := newSilent()
	slog.SetDefault(def)

	ctxWrong := context.WithValue(context.Background(), ctxKey{}, "not-a-logger")
	require.Equal(t, def, From(ctxWrong))

	var nilLogger *slog.Logger
	ctxNil := context.WithValue(context.Background(), ctxKey{}, nilLogger)
	require.Equal(t, def, From(ctxNil))
}

func TestInto_ShadowParentLogger(t *testing.T) {
	parentL := newSilent()
	childL := newSilent()

	parent := Into(context.Background(), parentL)
	child := Into(parent, childL)

	require.Equal(t, childL, From(child))
	require.Equal(t, parentL, From(parent))
}

// Into не меняет отмену и дедлайн.
func TestInto_PreservesDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	child := Into(parent, newSilent())

	cdl, ok := child.Deadline()
	require.True(t, ok)
	pdl, _ := parent.Deadline()
	require.WithinDuration(t, pdl, cdl, time.Millisecond)
}

func TestOp_AddsOpAndArgs(t *testing.T) {
	h := newRecording()
	ctx := Into(context.Background(), slog.New(h))

	Op(ctx, "service/search/Search", "celebration_id", "c-1").Info("hello")

	require.Equal(t, "service/search/Search", h.attrs()["op"])
	require.Equal(t, "c-1", h.attrs()["celebration_id"])

	// Исходный логгер из контекста не получает op.
	From(ctx).Info("plain")
	require.NotContains(t, h.attrs(), "op")
}
