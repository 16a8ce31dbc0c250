// seed загружает стартовые данные из YAML: людей (для roster/postgres),
// празднования с приглашёнными и ветки комментариев.
//
// Даты празднований задаются либо абсолютно (date: RFC 3339 или YYYY-MM-DD),
// либо относительно момента загрузки (in_days: -30), чтобы локальный стенд
// всегда имел и прошедшие, и будущие юбилеи.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/storage"
	"github.com/pribylovaa/celebrations-service/pkg/log"
	"gopkg.in/yaml.v3"
)

// File — корень YAML-файла.
type File struct {
	People       []Person      `yaml:"people"`
	Celebrations []Celebration `yaml:"celebrations"`
}

type Person struct {
	ID        string `yaml:"id"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	AvatarURL string `yaml:"avatar_url"`
	JobTitle  string `yaml:"job_title"`
	TeamID    string `yaml:"team_id"`
}

type Celebration struct {
	ID                   string    `yaml:"id"`
	MilestoneName        string    `yaml:"milestone_name"`
	Date                 string    `yaml:"date"`
	InDays               *int      `yaml:"in_days"`
	ImageURL             string    `yaml:"image_url"`
	CelebratorID         string    `yaml:"celebrator_id"`
	CanContribute        bool      `yaml:"can_contribute"`
	AllowPrivateComments bool      `yaml:"allow_private_comments"`
	HasCelebratorThanked bool      `yaml:"has_celebrator_thanked"`
	ThankYou             *ThankYou `yaml:"thank_you"`
	TotalInvites         int32     `yaml:"total_invites"`
	Invitees             []Invitee `yaml:"invitees"`
	Comments             []Comment `yaml:"comments"`
}

type ThankYou struct {
	Comment    string `yaml:"comment"`
	TotalLikes int32  `yaml:"total_likes"`
}

// Invitee — либо person_id, либо внешний e-mail с именем.
type Invitee struct {
	PersonID  string `yaml:"person_id"`
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
}

// Comment — корневой комментарий с ответами.
type Comment struct {
	ContributorID string    `yaml:"contributor_id"`
	Text          string    `yaml:"text"`
	IsPrivate     bool      `yaml:"is_private"`
	TotalLikes    int32     `yaml:"total_likes"`
	Replies       []Comment `yaml:"replies"`
}

// Stats — итог применения сида.
type Stats struct {
	Celebrations int
	Skipped      int
	Comments     int
}

// Load читает и разбирает файл.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %q: %w", path, err)
	}

	return Parse(data)
}

// Parse разбирает YAML, неизвестные поля — ошибка.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}

	return &f, nil
}

// Persons возвращает людей сида в доменной модели.
func (f *File) Persons() []models.Person {
	out := make([]models.Person, 0, len(f.People))
	for _, p := range f.People {
		out = append(out, models.Person{
			ID:        strings.TrimSpace(p.ID),
			FirstName: strings.TrimSpace(p.FirstName),
			LastName:  strings.TrimSpace(p.LastName),
			Email:     strings.TrimSpace(p.Email),
			AvatarURL: p.AvatarURL,
			JobTitle:  p.JobTitle,
			TeamID:    p.TeamID,
		})
	}

	return out
}

// PersonWriter — справочник, принимающий записи о людях (PostgreSQL).
type PersonWriter interface {
	Upsert(ctx context.Context, p models.Person) error
}

// LoadPeople записывает людей сида в справочник до Apply: празднующие и авторы
// комментариев должны резолвиться. Повторная загрузка обновляет записи.
func (f *File) LoadPeople(ctx context.Context, w PersonWriter) (int, error) {
	const op = "seed/LoadPeople"

	people := f.Persons()
	for i, p := range people {
		if p.ID == "" {
			return i, fmt.Errorf("%s: person #%d: empty id", op, i)
		}

		if err := w.Upsert(ctx, p); err != nil {
			return i, fmt.Errorf("%s: person %q: %w", op, p.ID, err)
		}
	}

	return len(people), nil
}

// Apply создаёт празднования и комментарии.
// Празднование, уже существующее в хранилище (повторный запуск с Mongo), пропускается вместе с его ветками.
func (f *File) Apply(ctx context.Context, store storage.Storage, dir directory.Directory, now time.Time) (Stats, error) {
	const op = "seed/Apply"

	lg := log.From(ctx)
	var st Stats

	for i, sc := range f.Celebrations {
		c, err := f.celebration(ctx, dir, sc, now)
		if err != nil {
			return st, fmt.Errorf("%s: celebration #%d: %w", op, i, err)
		}

		created, err := store.CreateCelebration(ctx, *c)
		if err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				st.Skipped++
				lg.Debug("seed celebration exists", "celebration_id", c.ID)
				continue
			}

			return st, fmt.Errorf("%s: %w", op, err)
		}

		st.Celebrations++

		n, err := appendComments(ctx, store, dir, created.ID, "", sc.Comments)
		st.Comments += n
		if err != nil {
			return st, fmt.Errorf("%s: celebration %s: %w", op, created.ID, err)
		}
	}

	lg.Info("seed applied",
		"celebrations", st.Celebrations,
		"skipped", st.Skipped,
		"comments", st.Comments,
	)

	return st, nil
}

func (f *File) celebration(ctx context.Context, dir directory.Directory, sc Celebration, now time.Time) (*models.Celebration, error) {
	date, err := sc.date(now)
	if err != nil {
		return nil, err
	}

	celebrator, err := dir.Person(ctx, sc.CelebratorID)
	if err != nil {
		return nil, fmt.Errorf("celebrator %q: %w", sc.CelebratorID, err)
	}

	c := &models.Celebration{
		ID:                   strings.TrimSpace(sc.ID),
		MilestoneName:        sc.MilestoneName,
		Date:                 date,
		ImageURL:             sc.ImageURL,
		TotalInvites:         sc.TotalInvites,
		CanContribute:        sc.CanContribute,
		HasCelebratorThanked: sc.HasCelebratorThanked,
		AllowPrivateComments: sc.AllowPrivateComments,
		Celebrator:           *celebrator,
	}

	if sc.ThankYou != nil {
		c.ThankYouMessage = &models.ThankYou{Comment: sc.ThankYou.Comment, TotalLikes: sc.ThankYou.TotalLikes}
	}

	seen := map[string]struct{}{}
	for _, si := range sc.Invitees {
		inv, err := invitee(ctx, dir, si, now)
		if err != nil {
			return nil, err
		}

		if _, dup := seen[inv.Key]; dup {
			continue
		}
		seen[inv.Key] = struct{}{}
		c.Invitees = append(c.Invitees, inv)
	}

	return c, nil
}

func (sc Celebration) date(now time.Time) (time.Time, error) {
	switch {
	case sc.InDays != nil && sc.Date != "":
		return time.Time{}, fmt.Errorf("date and in_days are mutually exclusive")
	case sc.InDays != nil:
		return now.AddDate(0, 0, *sc.InDays).UTC(), nil
	case sc.Date == "":
		return time.Time{}, fmt.Errorf("date or in_days is required")
	}

	if t, err := time.Parse(time.RFC3339, sc.Date); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.DateOnly, sc.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", sc.Date, err)
	}

	return t, nil
}

func invitee(ctx context.Context, dir directory.Directory, si Invitee, now time.Time) (models.Invitee, error) {
	if id := strings.TrimSpace(si.PersonID); id != "" {
		p, err := dir.Person(ctx, id)
		if err != nil {
			return models.Invitee{}, fmt.Errorf("invitee %q: %w", id, err)
		}

		return models.Invitee{
			Key:       models.PersonKey(*p),
			PersonID:  p.ID,
			Email:     p.Email,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			InvitedAt: now.UTC(),
		}, nil
	}

	email := models.NormalizeEmail(si.Email)
	if email == "" {
		return models.Invitee{}, fmt.Errorf("invitee needs person_id or email")
	}

	return models.Invitee{
		Key:       email,
		Email:     email,
		FirstName: strings.TrimSpace(si.FirstName),
		LastName:  strings.TrimSpace(si.LastName),
		InvitedAt: now.UTC(),
	}, nil
}

func appendComments(ctx context.Context, store storage.ThreadStore, dir directory.Directory, celebrationID, parentID string, comments []Comment) (int, error) {
	var n int

	for _, sc := range comments {
		contributor, err := dir.Person(ctx, sc.ContributorID)
		if err != nil {
			return n, fmt.Errorf("contributor %q: %w", sc.ContributorID, err)
		}

		created, err := store.AppendComment(ctx, models.Comment{
			CelebrationID: celebrationID,
			ParentID:      parentID,
			IsPrivate:     sc.IsPrivate,
			TotalLikes:    sc.TotalLikes,
			Text:          strings.TrimSpace(sc.Text),
			Contributor:   *contributor,
		})
		if err != nil {
			return n, err
		}
		n++

		m, err := appendComments(ctx, store, dir, celebrationID, created.ID, sc.Replies)
		n += m
		if err != nil {
			return n, err
		}
	}

	return n, nil
}
