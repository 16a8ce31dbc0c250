package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/celebrations-service/internal/config"
	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/storage"
	"github.com/pribylovaa/celebrations-service/mocks"
	"github.com/stretchr/testify/require"
)

// newMocked — сервис поверх моков хранилища и справочника.
func newMocked(t *testing.T) (*Service, *mocks.MockStorage, *mocks.MockDirectory) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	dir := mocks.NewMockDirectory(ctrl)

	svc := New(st, dir, config.Config{Limits: testLimits()})
	svc.now = func() time.Time { return fixedNow }

	return svc, st, dir
}

func guestInvite(id string) InviteInput {
	return InviteInput{CelebrationID: id, Emails: []EmailInvite{{Email: "guest@y.io", FirstName: "G", LastName: "U"}}}
}

func TestInvite_ConflictRetriesExhausted(t *testing.T) {
	svc, st, _ := newMocked(t)
	ctx := context.Background()
	c := &models.Celebration{ID: "c1", Celebrator: ada, Version: 7}

	st.EXPECT().CelebrationByID(gomock.Any(), "c1").Return(c, nil).AnyTimes()
	// Первая попытка + ConflictRetries повторов.
	st.EXPECT().
		AddInvitees(gomock.Any(), "c1", int64(7), gomock.Any()).
		Return(nil, fmt.Errorf("storage/memory/AddInvitees: %w", storage.ErrConflict)).
		Times(int(testLimits().ConflictRetries) + 1)

	_, err := svc.Invite(ctx, as(charles), guestInvite("c1"))
	require.ErrorIs(t, err, ErrConflict)
}

func TestInvite_ConflictThenSuccess(t *testing.T) {
	svc, st, dir := newMocked(t)
	ctx := context.Background()

	stale := &models.Celebration{ID: "c1", Celebrator: ada, Version: 1}
	fresh := &models.Celebration{ID: "c1", Celebrator: ada, Version: 2}
	done := &models.Celebration{ID: "c1", Celebrator: ada, Version: 3, TotalInvites: 1}

	gomock.InOrder(
		st.EXPECT().CelebrationByID(gomock.Any(), "c1").Return(stale, nil),
		st.EXPECT().CelebrationByID(gomock.Any(), "c1").Return(stale, nil),
		st.EXPECT().AddInvitees(gomock.Any(), "c1", int64(1), gomock.Any()).Return(nil, storage.ErrConflict),
		st.EXPECT().CelebrationByID(gomock.Any(), "c1").Return(fresh, nil),
		st.EXPECT().AddInvitees(gomock.Any(), "c1", int64(2), gomock.Any()).Return(done, nil),
	)
	dir.EXPECT().Team(gomock.Any(), ada.ID).Return([]models.Person{ada, kate}, nil)
	dir.EXPECT().Team(gomock.Any(), charles.ID).Return(nil, directory.ErrNotFound)

	res, err := svc.Invite(ctx, as(charles), guestInvite("c1"))
	require.NoError(t, err)
	require.EqualValues(t, 1, res.InvitesSent)
	require.EqualValues(t, 1, res.Celebration.TotalInvites)
	require.Equal(t, []string{kate.ID}, personIDs(res.Suggested))
	require.False(t, res.Celebration.CelebratorInMyTeam, "неизвестный справочнику вызывающий — пустая команда")
}

func TestService_InternalErrors(t *testing.T) {
	boom := errors.New("connection reset")

	t.Run("storage_error_is_internal", func(t *testing.T) {
		svc, st, _ := newMocked(t)
		st.EXPECT().CelebrationByID(gomock.Any(), "c1").Return(nil, boom)

		_, err := svc.Thread(context.Background(), as(ada), ThreadInput{CelebrationID: "c1"})
		require.ErrorIs(t, err, ErrInternal)
		require.NotErrorIs(t, err, boom, "детали нижнего слоя наружу не уходят")
	})

	t.Run("deadline_passes_through", func(t *testing.T) {
		svc, st, _ := newMocked(t)
		st.EXPECT().SearchCelebrations(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)

		_, err := svc.Search(context.Background(), models.Caller{}, SearchInput{Limit: 10})
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.NotErrorIs(t, err, ErrInternal)
	})

	t.Run("directory_error_is_internal", func(t *testing.T) {
		svc, st, dir := newMocked(t)
		st.EXPECT().CelebrationByID(gomock.Any(), "c1").Return(&models.Celebration{ID: "c1"}, nil)
		dir.EXPECT().Search(gomock.Any(), directory.ByName, "ada", 2).Return(nil, 0, boom)

		_, err := svc.FindInvitees(context.Background(), as(ada), FindInviteesInput{CelebrationID: "c1", By: "name", Query: "Ada"})
		require.ErrorIs(t, err, ErrInternal)
	})

	t.Run("directory_error_on_post", func(t *testing.T) {
		svc, _, dir := newMocked(t)
		dir.EXPECT().Person(gomock.Any(), ada.ID).Return(nil, boom)

		_, err := svc.PostComment(context.Background(), as(ada), PostCommentInput{CelebrationID: "c1", Text: "hi"})
		require.ErrorIs(t, err, ErrInternal)
	})

	t.Run("parent_race_maps_to_not_found", func(t *testing.T) {
		svc, st, dir := newMocked(t)
		c := &models.Celebration{ID: "c1", Celebrator: ada, CanContribute: true}
		parent := &models.Comment{ID: "r1", CelebrationID: "c1"}

		dir.EXPECT().Person(gomock.Any(), charles.ID).Return(&charles, nil)
		st.EXPECT().CelebrationByID(gomock.Any(), "c1").Return(c, nil)
		st.EXPECT().CommentByID(gomock.Any(), "c1", "r1").Return(parent, nil)
		st.EXPECT().AppendComment(gomock.Any(), gomock.Any()).Return(nil, storage.ErrParentNotFound)

		_, err := svc.PostComment(context.Background(), as(charles), PostCommentInput{CelebrationID: "c1", ParentID: "r1", Text: "hi"})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDetailError(t *testing.T) {
	err := detail("service/x", ErrInvalidArgument, "limit must be in [1, %d]", 100)

	var de *DetailError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "limit must be in [1, 100]", de.Detail)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Equal(t, "service/x: invalid argument: limit must be in [1, 100]", err.Error())
}
