package service

import (
	"context"
	"testing"

	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/stretchr/testify/require"
)

func TestFindInvitees(t *testing.T) {
	e := newEnv(t)
	c := e.celebration(t, models.Celebration{ID: "c1", Date: days(5), Celebrator: ada})
	ctx := context.Background()

	t.Run("by_name_capped", func(t *testing.T) {
		res, err := e.svc.FindInvitees(ctx, as(ada), FindInviteesInput{CelebrationID: c.ID, By: "name", Query: "A"})
		require.NoError(t, err)
		require.EqualValues(t, 5, res.TotalResults, "total считается до ограничения")
		require.Equal(t, []string{charles.ID, grace.ID}, personIDs(res.People))
	})

	t.Run("by_email", func(t *testing.T) {
		res, err := e.svc.FindInvitees(ctx, as(ada), FindInviteesInput{CelebrationID: c.ID, By: "EMAIL", Query: " Grace@ "})
		require.NoError(t, err)
		require.EqualValues(t, 1, res.TotalResults)
		require.Equal(t, []string{grace.ID}, personIDs(res.People))
	})

	t.Run("caller_not_excluded", func(t *testing.T) {
		res, err := e.svc.FindInvitees(ctx, as(ada), FindInviteesInput{CelebrationID: c.ID, By: "name", Query: "lovelace"})
		require.NoError(t, err)
		require.Equal(t, []string{ada.ID}, personIDs(res.People))
	})

	t.Run("no_matches", func(t *testing.T) {
		res, err := e.svc.FindInvitees(ctx, as(ada), FindInviteesInput{CelebrationID: c.ID, By: "name", Query: "nobody"})
		require.NoError(t, err)
		require.Zero(t, res.TotalResults)
		require.NotNil(t, res.People)
		require.Empty(t, res.People)
	})

	errCases := []struct {
		name string
		in   FindInviteesInput
		want error
	}{
		{name: "unknown_by", in: FindInviteesInput{CelebrationID: c.ID, By: "phone", Query: "a"}, want: ErrInvalidArgument},
		{name: "empty_query", in: FindInviteesInput{CelebrationID: c.ID, By: "name", Query: "  "}, want: ErrInvalidArgument},
		{name: "empty_celebration", in: FindInviteesInput{By: "name", Query: "a"}, want: ErrInvalidArgument},
		{name: "unknown_celebration", in: FindInviteesInput{CelebrationID: "missing", By: "name", Query: "a"}, want: ErrNotFound},
	}

	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.FindInvitees(ctx, as(ada), tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
