package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/pkg/log"
	"github.com/pribylovaa/celebrations-service/pkg/redact"
)

// Фильтр по команде.
const (
	TeamAll        = "all"
	TeamMine       = "my_team"
	TeamOtherTeams = "other_teams"
)

// SearchInput — параметры поиска празднований.
// Пустые строки означают значения по умолчанию: team=all, time_period=future.
type SearchInput struct {
	// By — email | name; пустой Identifier отключает фильтр.
	By         string
	Identifier string
	Team       string
	TimePeriod string
	// NotBefore/NotAfter — YYYY-MM-DD (весь день включительно) или RFC 3339.
	NotBefore string
	NotAfter  string
	Limit     int64
	Cursor    int64
}

// SearchResult — страница поиска.
// NextCursor = Cursor + Limit всегда, в том числе на последней странице:
// конец выдачи определяется сравнением с Total.
type SearchResult struct {
	Celebrations []CelebrationView
	Total        int64
	NextCursor   int64
}

// Search — фильтрованный постраничный поиск празднований.
//
// Ошибки:
//   - ErrInvalidArgument — limit вне [1, search_max], cursor < 0, неизвестные значения фильтров,
//     битые даты, notBefore > notAfter, фильтр по команде без вызывающего;
//   - ErrInternal — прочие ошибки стораджа/справочника.
func (s *Service) Search(ctx context.Context, caller models.Caller, in SearchInput) (*SearchResult, error) {
	const op = "service/search/Search"

	lg := log.Op(ctx, op,
		"caller", caller.PersonID,
		"by", in.By,
		"identifier", redact.Query(in.Identifier),
		"team", in.Team,
		"time_period", in.TimePeriod,
		"limit", in.Limit,
		"cursor", in.Cursor,
	)

	if in.Limit < 1 || in.Limit > int64(s.limits.SearchMax) {
		lg.Warn("invalid argument: limit")
		return nil, detail(op, ErrInvalidArgument, "limit must be in [1, %d]", s.limits.SearchMax)
	}

	if in.Cursor < 0 {
		lg.Warn("invalid argument: cursor")
		return nil, detail(op, ErrInvalidArgument, "cursor must be >= 0")
	}

	if in.Cursor > math.MaxInt64-in.Limit {
		lg.Warn("invalid argument: cursor overflow")
		return nil, detail(op, ErrInvalidArgument, "cursor is too large")
	}

	now := s.now().UTC()
	q := models.CelebrationQuery{Now: now, Offset: in.Cursor, Limit: in.Limit}

	if err := applyIdentity(&q, in.By, in.Identifier); err != nil {
		lg.Warn("invalid argument: identity filter", "err", err)
		return nil, detail(op, ErrInvalidArgument, "%s", err)
	}

	switch period := models.TimePeriod(strings.ToLower(strings.TrimSpace(in.TimePeriod))); period {
	case "":
		q.Period = models.PeriodFuture
	case models.PeriodFuture, models.PeriodPast:
		q.Period = period
	default:
		lg.Warn("invalid argument: time period")
		return nil, detail(op, ErrInvalidArgument, "timePeriod must be one of future|past")
	}

	var err error
	if q.NotBefore, err = parseBound(in.NotBefore, false); err != nil {
		lg.Warn("invalid argument: notBeforeDate", "err", err)
		return nil, detail(op, ErrInvalidArgument, "notBeforeDate: %s", err)
	}

	if q.NotAfter, err = parseBound(in.NotAfter, true); err != nil {
		lg.Warn("invalid argument: notAfterDate", "err", err)
		return nil, detail(op, ErrInvalidArgument, "notAfterDate: %s", err)
	}

	if !q.NotBefore.IsZero() && !q.NotAfter.IsZero() && q.NotBefore.After(q.NotAfter) {
		lg.Warn("invalid argument: notBeforeDate after notAfterDate")
		return nil, detail(op, ErrInvalidArgument, "notBeforeDate must not be after notAfterDate")
	}

	team := strings.ToLower(strings.TrimSpace(in.Team))
	if team == "" {
		team = TeamAll
	}

	if team != TeamAll && team != TeamMine && team != TeamOtherTeams {
		lg.Warn("invalid argument: team")
		return nil, detail(op, ErrInvalidArgument, "team must be one of my_team|other_teams|all")
	}

	if team != TeamAll && caller.Anonymous() {
		lg.Warn("invalid argument: team filter without caller")
		return nil, detail(op, ErrInvalidArgument, "team filter %q requires caller identity", team)
	}

	myTeam, err := s.callerTeam(ctx, caller)
	if err != nil {
		return nil, internalErr(lg, op, "directory error on Team", err)
	}

	// Множество «моей команды» всегда содержит вызывающего, если он есть в справочнике.
	if team != TeamAll && len(myTeam) == 0 {
		lg.Warn("invalid argument: caller not in directory")
		return nil, detail(op, ErrInvalidArgument, "caller %q is not in the directory", caller.PersonID)
	}

	ids := make([]string, 0, len(myTeam))
	for id := range myTeam {
		ids = append(ids, id)
	}

	switch team {
	case TeamMine:
		q.CelebratorIn = ids
	case TeamOtherTeams:
		q.CelebratorNotIn = ids
	}

	page, err := s.storage.SearchCelebrations(ctx, q)
	if err != nil {
		return nil, internalErr(lg, op, "storage error on SearchCelebrations", err)
	}

	out := &SearchResult{
		Celebrations: make([]CelebrationView, 0, len(page.Items)),
		Total:        page.Total,
		NextCursor:   in.Cursor + in.Limit,
	}

	for _, c := range page.Items {
		out.Celebrations = append(out.Celebrations, view(c, caller, myTeam))
	}

	lg.Debug("search done", "total", out.Total, "returned", len(out.Celebrations))
	return out, nil
}

// applyIdentity переводит {by, identifier} в фильтр хранилища.
func applyIdentity(q *models.CelebrationQuery, by, identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil
	}

	field, err := directory.ParseSearchBy(by)
	if err != nil {
		return fmt.Errorf("search.by must be one of email|name")
	}

	switch field {
	case directory.ByEmail:
		q.CelebratorEmail = models.NormalizeEmail(identifier)
	case directory.ByName:
		q.CelebratorName = identifier
	}

	return nil
}

// parseBound разбирает границу периода. Дата без времени покрывает весь день (UTC):
// нижняя граница — начало дня, верхняя — последний момент дня.
func parseBound(s string, upper bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errors.New("expected YYYY-MM-DD or RFC 3339 timestamp")
	}

	if upper {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return t, nil
}
