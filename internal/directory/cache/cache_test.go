package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/stretchr/testify/require"
)

// countingDirectory — справочник-заглушка, считающий обращения.
type countingDirectory struct {
	people map[string]models.Person
	calls  map[string]int
}

func newCounting(people ...models.Person) *countingDirectory {
	d := &countingDirectory{people: map[string]models.Person{}, calls: map[string]int{}}
	for _, p := range people {
		d.people[p.ID] = p
	}
	return d
}

func (d *countingDirectory) Person(_ context.Context, id string) (*models.Person, error) {
	d.calls["person"]++
	p, ok := d.people[id]
	if !ok {
		return nil, directory.ErrNotFound
	}
	return &p, nil
}

func (d *countingDirectory) Search(_ context.Context, _ directory.SearchBy, _ string, _ int) ([]models.Person, int, error) {
	d.calls["search"]++
	return nil, 0, nil
}

func (d *countingDirectory) Team(_ context.Context, personID string) ([]models.Person, error) {
	d.calls["team"]++
	me, ok := d.people[personID]
	if !ok {
		return nil, directory.ErrNotFound
	}

	var out []models.Person
	for _, id := range []string{"p1", "p2", "p3"} {
		if p, ok := d.people[id]; ok && p.TeamID == me.TeamID {
			out = append(out, p)
		}
	}
	return out, nil
}

func setupCache(t *testing.T) (*Cache, *countingDirectory, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	next := newCounting(
		models.Person{ID: "p1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.io", TeamID: "t1"},
		models.Person{ID: "p2", FirstName: "Charles", LastName: "Babbage", Email: "charles@x.io", TeamID: "t1"},
		models.Person{ID: "p3", FirstName: "Grace", LastName: "Hopper", TeamID: "t2"},
	)

	c, err := New(context.Background(), next, "redis://"+s.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, next, s
}

func TestNew_BadURL(t *testing.T) {
	_, err := New(context.Background(), newCounting(), "://nope", time.Minute)
	require.Error(t, err)
}

func TestPerson_ReadThrough(t *testing.T) {
	c, next, s := setupCache(t)
	ctx := context.Background()

	p, err := c.Person(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Ada", p.FirstName)

	p, err = c.Person(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "ada@x.io", p.Email)
	require.Equal(t, "t1", p.TeamID)
	require.Equal(t, 1, next.calls["person"], "второе чтение из кэша")

	require.True(t, s.Exists(defaultPrefix+"person:p1"))
	require.Equal(t, time.Minute, s.TTL(defaultPrefix+"person:p1"))

	s.FastForward(2 * time.Minute)
	_, err = c.Person(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 2, next.calls["person"], "после TTL снова в справочник")
}

func TestPerson_NotFoundIsNotCached(t *testing.T) {
	c, next, _ := setupCache(t)
	ctx := context.Background()

	_, err := c.Person(ctx, "nope")
	require.ErrorIs(t, err, directory.ErrNotFound)
	_, err = c.Person(ctx, "nope")
	require.ErrorIs(t, err, directory.ErrNotFound)
	require.Equal(t, 2, next.calls["person"])
}

func TestTeam_ReadThrough(t *testing.T) {
	c, next, _ := setupCache(t)
	ctx := context.Background()

	team, err := c.Team(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"p1", "p2"}, directory.IDs(team))

	team, err = c.Team(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"p1", "p2"}, directory.IDs(team))
	require.Equal(t, 1, next.calls["team"])

	// Человек из команды уже прогрет составом команды.
	_, err = c.Person(ctx, "p2")
	require.NoError(t, err)
	require.Zero(t, next.calls["person"])
}

func TestSearch_PassThrough(t *testing.T) {
	c, next, _ := setupCache(t)

	_, _, err := c.Search(context.Background(), directory.ByName, "ada", 5)
	require.NoError(t, err)
	_, _, err = c.Search(context.Background(), directory.ByName, "ada", 5)
	require.NoError(t, err)
	require.Equal(t, 2, next.calls["search"])
}

func TestRedisDown_FallsBack(t *testing.T) {
	c, next, s := setupCache(t)
	s.Close()

	p, err := c.Person(context.Background(), "p3")
	require.NoError(t, err)
	require.Equal(t, "Grace", p.FirstName)
	require.Equal(t, 1, next.calls["person"])
}
