package roster

import (
	"context"
	"testing"

	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/stretchr/testify/require"
)

func fixture() []models.Person {
	return []models.Person{
		{ID: "p3", FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil", TeamID: "compilers"},
		{ID: "p1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@engine.io", TeamID: "engines"},
		{ID: "p2", FirstName: "Charles", LastName: "Babbage", Email: "charles@engine.io", TeamID: "engines"},
		{ID: "p4", FirstName: "Alan", LastName: "Turing", Email: "alan@bletchley.uk"},
	}
}

func mustRoster(t *testing.T) *Roster {
	t.Helper()
	r, err := New(fixture())
	require.NoError(t, err)
	return r
}

func TestNew_RejectsBadIDs(t *testing.T) {
	_, err := New([]models.Person{{ID: ""}})
	require.Error(t, err)

	_, err = New([]models.Person{{ID: "a"}, {ID: "a"}})
	require.ErrorContains(t, err, "duplicate")
}

func TestPerson(t *testing.T) {
	r := mustRoster(t)
	ctx := context.Background()

	p, err := r.Person(ctx, " p1 ")
	require.NoError(t, err)
	require.Equal(t, "Ada", p.FirstName)

	_, err = r.Person(ctx, "nope")
	require.ErrorIs(t, err, directory.ErrNotFound)
	require.Equal(t, 4, r.Len())
}

func TestSearch(t *testing.T) {
	r := mustRoster(t)
	ctx := context.Background()

	people, total, err := r.Search(ctx, directory.ByEmail, "ENGINE.io", 1)
	require.NoError(t, err)
	require.Equal(t, 2, total, "total считается до ограничения")
	require.Len(t, people, 1)
	require.Equal(t, "p2", people[0].ID, "порядок по фамилии")

	people, total, err = r.Search(ctx, directory.ByName, "a", 10)
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Equal(t, []string{"p2", "p3", "p1", "p4"}, directory.IDs(people))

	people, total, err = r.Search(ctx, directory.ByName, "   ", 10)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, people)
}

func TestTeam(t *testing.T) {
	r := mustRoster(t)
	ctx := context.Background()

	team, err := r.Team(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"p2", "p1"}, directory.IDs(team))

	team, err = r.Team(ctx, "p4")
	require.NoError(t, err)
	require.Equal(t, []string{"p4"}, directory.IDs(team), "без команды — только сам человек")

	_, err = r.Team(ctx, "nope")
	require.ErrorIs(t, err, directory.ErrNotFound)
}
