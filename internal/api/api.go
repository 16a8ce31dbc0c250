package api

import (
	"context"

	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/service"
)

// Celebrations — операции ядра, которые публикуют транспорты.
type Celebrations interface {
	Search(ctx context.Context, caller models.Caller, in service.SearchInput) (*service.SearchResult, error)
	Thread(ctx context.Context, caller models.Caller, in service.ThreadInput) (*service.ThreadResult, error)
	PostComment(ctx context.Context, caller models.Caller, in service.PostCommentInput) (*service.PostCommentResult, error)
	Invite(ctx context.Context, caller models.Caller, in service.InviteInput) (*service.InviteResult, error)
	FindInvitees(ctx context.Context, caller models.Caller, in service.FindInviteesInput) (*service.FindInviteesResult, error)
}

// API — общий для MCP и HTTP путь запроса: валидация, вызов ядра, сборка ответа.
// Ошибки возвращаются как есть; транспорт переводит их через ToStatus.
type API struct {
	svc Celebrations
}

// New создаёт API поверх ядра.
func New(svc Celebrations) *API {
	return &API{svc: svc}
}

// Search — инструмент search.
func (a *API) Search(ctx context.Context, caller models.Caller, q SearchQuery) (*SearchResponse, error) {
	if err := Validate(q); err != nil {
		return nil, err
	}

	res, err := a.svc.Search(ctx, caller, q.SearchInput())
	if err != nil {
		return nil, err
	}

	out := SearchFromResult(res)
	return &out, nil
}

// Contributions — инструмент celebration_contributions.
func (a *API) Contributions(ctx context.Context, caller models.Caller, q ContributionsQuery) (*ContributionsResponse, error) {
	if err := Validate(q); err != nil {
		return nil, err
	}

	res, err := a.svc.Thread(ctx, caller, service.ThreadInput{CelebrationID: q.CelebrationID, Cursor: q.Cursor})
	if err != nil {
		return nil, err
	}

	out := ContributionsFromResult(res, caller)
	return &out, nil
}

// Comment — инструмент comment.
func (a *API) Comment(ctx context.Context, caller models.Caller, q CommentQuery) (*CommentResponse, error) {
	if err := Validate(q); err != nil {
		return nil, err
	}

	res, err := a.svc.PostComment(ctx, caller, service.PostCommentInput{
		CelebrationID: q.CelebrationID,
		ParentID:      q.CommentID,
		Text:          q.Comment,
		IsPrivate:     q.IsPrivate,
	})
	if err != nil {
		return nil, err
	}

	out := CommentFromResult(res, caller)
	return &out, nil
}

// Invite — инструмент invite.
func (a *API) Invite(ctx context.Context, caller models.Caller, q InviteQuery) (*InviteResponse, error) {
	if err := Validate(q); err != nil {
		return nil, err
	}

	res, err := a.svc.Invite(ctx, caller, q.InviteInput())
	if err != nil {
		return nil, err
	}

	out := InviteFromResult(res)
	return &out, nil
}

// FindInvitees — инструмент find_invitees.
func (a *API) FindInvitees(ctx context.Context, caller models.Caller, q FindInviteesQuery) (*FindInviteesResponse, error) {
	if err := Validate(q); err != nil {
		return nil, err
	}

	res, err := a.svc.FindInvitees(ctx, caller, service.FindInviteesInput{
		CelebrationID: q.CelebrationID,
		By:            q.Search.By,
		Query:         q.Search.Query,
	})
	if err != nil {
		return nil, err
	}

	out := FindInviteesFromResult(res, caller)
	return &out, nil
}
