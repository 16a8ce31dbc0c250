// roster — справочник людей в памяти процесса, собранный из сида.
// После New данные не меняются, поэтому блокировки не нужны.
package roster

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/models"
)

// Roster — неизменяемый справочник.
type Roster struct {
	// people — все люди в порядке (фамилия, имя, id).
	people []models.Person
	byID   map[string]int
	teams  map[string][]int
}

var _ directory.Directory = (*Roster)(nil)

// New строит справочник. Пустой или повторный ID — ошибка.
func New(people []models.Person) (*Roster, error) {
	const op = "directory/roster/New"

	sorted := slices.Clone(people)
	slices.SortFunc(sorted, comparePeople)

	r := &Roster{
		people: sorted,
		byID:   make(map[string]int, len(sorted)),
		teams:  make(map[string][]int),
	}

	for i, p := range sorted {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("%s: person %q has empty id", op, p.FullName())
		}

		if _, ok := r.byID[p.ID]; ok {
			return nil, fmt.Errorf("%s: duplicate person id %q", op, p.ID)
		}

		r.byID[p.ID] = i
		if p.TeamID != "" {
			r.teams[p.TeamID] = append(r.teams[p.TeamID], i)
		}
	}

	return r, nil
}

// Person возвращает человека по идентификатору.
func (r *Roster) Person(ctx context.Context, id string) (*models.Person, error) {
	const op = "directory/roster/Person"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	i, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, directory.ErrNotFound)
	}

	p := r.people[i]
	return &p, nil
}

// Search — линейный просмотр по подстроке.
func (r *Roster) Search(ctx context.Context, by directory.SearchBy, query string, limit int) ([]models.Person, int, error) {
	const op = "directory/roster/Search"

	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query = directory.NormalizeQuery(query)
	if query == "" {
		return nil, 0, nil
	}

	var (
		out   []models.Person
		total int
	)

	for _, p := range r.people {
		if !directory.MatchQuery(p, by, query) {
			continue
		}

		total++
		if len(out) < limit {
			out = append(out, p)
		}
	}

	return out, total, nil
}

// Team возвращает членов команды человека. Человек без команды — команда из одного себя.
func (r *Roster) Team(ctx context.Context, personID string) ([]models.Person, error) {
	const op = "directory/roster/Team"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	i, ok := r.byID[strings.TrimSpace(personID)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, directory.ErrNotFound)
	}

	teamID := r.people[i].TeamID
	if teamID == "" {
		return []models.Person{r.people[i]}, nil
	}

	idx := r.teams[teamID]
	out := make([]models.Person, 0, len(idx))
	for _, j := range idx {
		out = append(out, r.people[j])
	}

	return out, nil
}

// Len — число людей в справочнике.
func (r *Roster) Len() int {
	return len(r.people)
}

func comparePeople(a, b models.Person) int {
	if c := cmp.Compare(strings.ToLower(a.LastName), strings.ToLower(b.LastName)); c != 0 {
		return c
	}

	if c := cmp.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName)); c != 0 {
		return c
	}

	return cmp.Compare(a.ID, b.ID)
}
