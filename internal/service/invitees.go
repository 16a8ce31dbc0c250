package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/storage"
	"github.com/pribylovaa/celebrations-service/pkg/log"
	"github.com/pribylovaa/celebrations-service/pkg/redact"
)

// FindInviteesInput — поиск людей для приглашения.
type FindInviteesInput struct {
	CelebrationID string
	By            string
	Query         string
}

// FindInviteesResult — найденные люди и число совпадений до ограничения выдачи.
type FindInviteesResult struct {
	People       []models.Person
	TotalResults int64
}

// FindInvitees — тонкая обёртка над справочником с ограничением limits.find_results.
// Вызывающий не исключается, его помечает проводной слой (isCurrentUser).
//
// Ошибки:
//   - ErrInvalidArgument — пустой запрос или неизвестное поле поиска;
//   - ErrNotFound — празднования нет;
//   - ErrInternal — прочие ошибки.
func (s *Service) FindInvitees(ctx context.Context, caller models.Caller, in FindInviteesInput) (*FindInviteesResult, error) {
	const op = "service/invitees/FindInvitees"

	lg := log.Op(ctx, op,
		"caller", caller.PersonID,
		"celebration_id", in.CelebrationID,
		"by", in.By,
		"query", redact.Query(in.Query),
	)

	id := strings.TrimSpace(in.CelebrationID)
	if id == "" {
		lg.Warn("invalid argument: empty celebration_id")
		return nil, detail(op, ErrInvalidArgument, "celebrationId is required")
	}

	by, err := directory.ParseSearchBy(in.By)
	if err != nil {
		lg.Warn("invalid argument: search.by")
		return nil, detail(op, ErrInvalidArgument, "search.by must be one of name|email")
	}

	query := directory.NormalizeQuery(in.Query)
	if query == "" {
		lg.Warn("invalid argument: empty query")
		return nil, detail(op, ErrInvalidArgument, "search.query must not be empty")
	}

	if _, err := s.storage.CelebrationByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("celebration not found")
			return nil, detail(op, ErrNotFound, "celebration %q not found", id)
		}

		return nil, internalErr(lg, op, "storage error on CelebrationByID", err)
	}

	people, total, err := s.directory.Search(ctx, by, query, int(s.limits.FindResults))
	if err != nil {
		return nil, internalErr(lg, op, "directory error on Search", err)
	}

	if people == nil {
		people = []models.Person{}
	}

	lg.Debug("invitees found", "total", total, "returned", len(people))
	return &FindInviteesResult{People: people, TotalResults: int64(total)}, nil
}
