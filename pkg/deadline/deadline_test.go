package deadline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEnsure_SetsDeadline(t *testing.T) {
	ctx, cancel := Ensure(context.Background(), 50*time.Millisecond)
	defer cancel()

	dl, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(50*time.Millisecond), dl, 20*time.Millisecond)

	<-ctx.Done()
	require.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

func TestEnsure_KeepsExistingDeadline(t *testing.T) {
	parent, cancelParent := context.WithTimeout(context.Background(), time.Hour)
	defer cancelParent()
	want, _ := parent.Deadline()

	ctx, cancel := Ensure(parent, time.Millisecond)
	defer cancel()

	got, ok := ctx.Deadline()
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestEnsure_NonPositiveIsNoop(t *testing.T) {
	base := context.Background()
	for _, d := range []time.Duration{0, -time.Second} {
		ctx, cancel := Ensure(base, d)
		require.NotPanics(t, func() { cancel() })
		_, ok := ctx.Deadline()
		require.False(t, ok)
		require.Equal(t, base, ctx)
	}
}
