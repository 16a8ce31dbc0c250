package service

import (
	"context"
	"errors"

	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/models"
)

// CelebrationView — празднование глазами вызывающего.
type CelebrationView struct {
	models.Celebration
	// HasContributed — вызывающий оставлял комментарии.
	HasContributed bool
	// CelebratorInMyTeam — празднующий в команде вызывающего.
	CelebratorInMyTeam bool
}

// teamSet — идентификаторы членов команды вызывающего.
// Анонимный или неизвестный справочнику вызывающий — пустое множество.
type teamSet map[string]struct{}

func (t teamSet) has(id string) bool {
	_, ok := t[id]
	return ok
}

func (s *Service) callerTeam(ctx context.Context, caller models.Caller) (teamSet, error) {
	if caller.Anonymous() {
		return teamSet{}, nil
	}

	team, err := s.directory.Team(ctx, caller.PersonID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return teamSet{}, nil
		}

		return nil, err
	}

	set := make(teamSet, len(team))
	for _, p := range team {
		set[p.ID] = struct{}{}
	}

	return set, nil
}

func view(c models.Celebration, caller models.Caller, team teamSet) CelebrationView {
	return CelebrationView{
		Celebration:        c,
		HasContributed:     !caller.Anonymous() && c.HasContributed(caller.PersonID),
		CelebratorInMyTeam: team.has(c.Celebrator.ID),
	}
}
