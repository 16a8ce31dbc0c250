package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/models"
)

// personColumns — единый список колонок таблицы people,
// используемый во всех SELECT, чтобы гарантировать одинаковый порядок сканирования.
const personColumns = `person_id, first_name, last_name, email, avatar_url, job_title, team_id`

// orderPeople — стабильный порядок выдачи, совпадающий с roster.
const orderPeople = ` ORDER BY lower(last_name), lower(first_name), person_id`

func scanPerson(row pgx.Row) (*models.Person, error) {
	var p models.Person
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.AvatarURL, &p.JobTitle, &p.TeamID); err != nil {
		return nil, err
	}

	return &p, nil
}

// Person возвращает человека по person_id.
func (d *Directory) Person(ctx context.Context, id string) (*models.Person, error) {
	const op = "directory/postgres/Person"

	q := `SELECT ` + personColumns + ` FROM people WHERE person_id = $1`

	p, err := scanPerson(d.db.QueryRow(ctx, q, strings.TrimSpace(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, directory.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// Search ищет по подстроке через strpos(lower(...)); total — число совпадений до LIMIT.
func (d *Directory) Search(ctx context.Context, by directory.SearchBy, query string, limit int) ([]models.Person, int, error) {
	const op = "directory/postgres/Search"

	query = directory.NormalizeQuery(query)
	if query == "" {
		return nil, 0, nil
	}

	var expr string
	switch by {
	case directory.ByEmail:
		expr = `lower(trim(email))`
	case directory.ByName:
		expr = `lower(trim(first_name || ' ' || last_name))`
	default:
		return nil, 0, fmt.Errorf("%s: unknown search field %q", op, by)
	}

	countQ := `SELECT count(*) FROM people WHERE strpos(` + expr + `, $1) > 0`

	var total int
	if err := d.db.QueryRow(ctx, countQ, query).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}

	if total == 0 || limit <= 0 {
		return nil, total, nil
	}

	q := `SELECT ` + personColumns + ` FROM people WHERE strpos(` + expr + `, $1) > 0` + orderPeople + ` LIMIT $2`

	people, err := d.queryPeople(ctx, q, query, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return people, total, nil
}

// Team возвращает членов команды человека; человек без команды — команда из одного себя.
func (d *Directory) Team(ctx context.Context, personID string) ([]models.Person, error) {
	const op = "directory/postgres/Team"

	p, err := d.Person(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.TeamID == "" {
		return []models.Person{*p}, nil
	}

	q := `SELECT ` + personColumns + ` FROM people WHERE team_id = $1` + orderPeople

	people, err := d.queryPeople(ctx, q, p.TeamID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return people, nil
}

// Upsert вставляет или обновляет человека (seed.LoadPeople при driver=postgres).
func (d *Directory) Upsert(ctx context.Context, p models.Person) error {
	const op = "directory/postgres/Upsert"

	q := `
	INSERT INTO people (` + personColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (person_id) DO UPDATE SET
		first_name = EXCLUDED.first_name,
		last_name  = EXCLUDED.last_name,
		email      = EXCLUDED.email,
		avatar_url = EXCLUDED.avatar_url,
		job_title  = EXCLUDED.job_title,
		team_id    = EXCLUDED.team_id`

	if _, err := d.db.Exec(ctx, q, p.ID, p.FirstName, p.LastName, p.Email, p.AvatarURL, p.JobTitle, p.TeamID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (d *Directory) queryPeople(ctx context.Context, q string, args ...any) ([]models.Person, error) {
	rows, err := d.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	return out, rows.Err()
}
