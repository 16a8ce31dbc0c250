package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/storage"
	"github.com/pribylovaa/celebrations-service/pkg/log"
	"github.com/pribylovaa/celebrations-service/pkg/redact"
)

// emailCheck — проверка формата адреса тем же валидатором, что и проводной слой.
var emailCheck = validator.New()

// EmailInvite — приглашение внешнего участника по адресу.
type EmailInvite struct {
	Email     string
	FirstName string
	LastName  string
}

// InviteInput — смешанный запрос приглашения.
type InviteInput struct {
	CelebrationID string
	PersonIDs     []string
	Emails        []EmailInvite
}

// InviteResult — итог приглашения.
type InviteResult struct {
	Celebration    CelebrationView
	InvitesSent    int32
	AlreadyInvited int32
	// Invited — добавленные этим вызовом, в порядке обработки (сначала id, затем e-mail).
	Invited []models.Invitee
	// Suggested — кандидаты из команды празднующего, ещё не приглашённые.
	Suggested []models.Person
}

// Invite дедуплицирует и добавляет приглашённых.
//
// Всё или ничего: любая ошибочная запись отклоняет весь вызов.
// Коммит — CAS по версии празднования; при конфликте весь цикл
// «прочитать-дедуплицировать-записать» повторяется до limits.conflict_retries раз.
//
// Ошибки:
//   - ErrInvalidArgument — нет записей, пустой id, битый e-mail, пустые firstName/lastName;
//   - ErrNotFound — празднования нет, roster id неизвестен;
//   - ErrConflict — повторы исчерпаны;
//   - ErrInternal — прочие ошибки.
func (s *Service) Invite(ctx context.Context, caller models.Caller, in InviteInput) (*InviteResult, error) {
	const op = "service/invitations/Invite"

	lg := log.Op(ctx, op,
		"caller", caller.PersonID,
		"celebration_id", in.CelebrationID,
		"by_id", len(in.PersonIDs),
		"by_email", len(in.Emails),
	)

	id := strings.TrimSpace(in.CelebrationID)
	if id == "" {
		lg.Warn("invalid argument: empty celebration_id")
		return nil, detail(op, ErrInvalidArgument, "celebrationId is required")
	}

	if len(in.PersonIDs)+len(in.Emails) == 0 {
		lg.Warn("invalid argument: nothing to invite")
		return nil, detail(op, ErrInvalidArgument, "at least one invitee is required")
	}

	external := make([]models.Invitee, 0, len(in.Emails))
	for i, e := range in.Emails {
		inv, err := externalInvitee(e)
		if err != nil {
			lg.Warn("invalid argument: email invitee", "index", i, "email", redact.Email(e.Email), "err", err)
			return nil, detail(op, ErrInvalidArgument, "byEmailAddress[%d]: %s", i, err)
		}
		external = append(external, inv)
	}

	for i, pid := range in.PersonIDs {
		if strings.TrimSpace(pid) == "" {
			lg.Warn("invalid argument: empty roster id", "index", i)
			return nil, detail(op, ErrInvalidArgument, "byRosterPersonId[%d]: rosterPersonId is required", i)
		}
	}

	if _, err := s.storage.CelebrationByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("celebration not found")
			return nil, detail(op, ErrNotFound, "celebration %q not found", id)
		}

		return nil, internalErr(lg, op, "storage error on CelebrationByID", err)
	}

	internal := make([]models.Invitee, 0, len(in.PersonIDs))
	for _, pid := range in.PersonIDs {
		p, err := s.directory.Person(ctx, strings.TrimSpace(pid))
		if err != nil {
			if errors.Is(err, directory.ErrNotFound) {
				lg.Warn("roster person not found", "person_id", pid)
				return nil, detail(op, ErrNotFound, "roster person %q not found", pid)
			}

			return nil, internalErr(lg, op, "directory error on Person", err)
		}

		internal = append(internal, models.Invitee{
			Key:       models.PersonKey(*p),
			PersonID:  p.ID,
			Email:     p.Email,
			FirstName: p.FirstName,
			LastName:  p.LastName,
		})
	}

	// Порядок обработки: сначала roster id, затем e-mail, каждый — в порядке вызывающего.
	candidates := append(internal, external...)

	var (
		res  *InviteResult
		cel  *models.Celebration
		keys map[string]struct{}
	)

	attempts := int(s.limits.ConflictRetries)
	for attempt := 0; ; attempt++ {
		c, err := s.storage.CelebrationByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, detail(op, ErrNotFound, "celebration %q not found", id)
			}

			return nil, internalErr(lg, op, "storage error on CelebrationByID", err)
		}

		res = &InviteResult{Invited: []models.Invitee{}}
		keys = c.InviteeKeys()
		now := s.now().UTC()

		for _, cand := range candidates {
			if _, ok := keys[cand.Key]; ok {
				res.AlreadyInvited++
				continue
			}

			keys[cand.Key] = struct{}{}
			cand.InvitedAt = now
			res.Invited = append(res.Invited, cand)
			res.InvitesSent++
		}

		if len(res.Invited) == 0 {
			cel = c
			break
		}

		cel, err = s.storage.AddInvitees(ctx, id, c.Version, res.Invited)
		if err == nil {
			break
		}

		if !errors.Is(err, storage.ErrConflict) {
			return nil, internalErr(lg, op, "storage error on AddInvitees", err)
		}

		if attempt >= attempts {
			lg.Warn("conflict retries exhausted", "attempts", attempt+1)
			return nil, detail(op, ErrConflict, "celebration was modified concurrently, retry later")
		}

		lg.Debug("version conflict, retrying", "attempt", attempt+1)
	}

	suggested, err := s.suggest(ctx, caller, cel, keys)
	if err != nil {
		return nil, internalErr(lg, op, "directory error on Team", err)
	}
	res.Suggested = suggested

	myTeam, err := s.callerTeam(ctx, caller)
	if err != nil {
		return nil, internalErr(lg, op, "directory error on Team", err)
	}
	res.Celebration = view(*cel, caller, myTeam)

	lg.Info("invites processed",
		"invites_sent", res.InvitesSent,
		"already_invited", res.AlreadyInvited,
		"total_invites", cel.TotalInvites,
	)

	return res, nil
}

// externalInvitee нормализует и проверяет запись по e-mail.
func externalInvitee(e EmailInvite) (models.Invitee, error) {
	email := models.NormalizeEmail(e.Email)
	if email == "" {
		return models.Invitee{}, errors.New("emailAddress is required")
	}

	if err := emailCheck.Var(email, "email"); err != nil {
		return models.Invitee{}, errors.New("emailAddress is malformed")
	}

	first, last := strings.TrimSpace(e.FirstName), strings.TrimSpace(e.LastName)
	if first == "" || last == "" {
		return models.Invitee{}, errors.New("firstName and lastName are required")
	}

	return models.Invitee{Key: email, Email: email, FirstName: first, LastName: last}, nil
}

// suggest — члены команды празднующего, кроме празднующего, вызывающего и уже приглашённых.
func (s *Service) suggest(ctx context.Context, caller models.Caller, c *models.Celebration, invited map[string]struct{}) ([]models.Person, error) {
	out := []models.Person{}
	if s.limits.Suggestions <= 0 {
		return out, nil
	}

	team, err := s.directory.Team(ctx, c.Celebrator.ID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return out, nil
		}

		return nil, err
	}

	for _, p := range team {
		if p.ID == c.Celebrator.ID || caller.Is(p.ID) {
			continue
		}

		if _, ok := invited[models.PersonKey(p)]; ok {
			continue
		}

		out = append(out, p)
		if len(out) >= int(s.limits.Suggestions) {
			break
		}
	}

	return out, nil
}
