// Package directory описывает контракт справочника людей (PersonDirectory).
//
// Справочник — внешний по отношению к ядру источник: ядро только ищет
// людей и вычисляет отношение «моя команда». Реализации:
//   - roster: в памяти, из YAML-сида;
//   - postgres: таблица people;
//   - cache: read-through кэш в Redis поверх любой реализации.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/celebrations-service/internal/models"
)

// ErrNotFound — человека с таким идентификатором нет в справочнике.
var ErrNotFound = errors.New("person not found")

// SearchBy — поле поиска людей.
type SearchBy string

const (
	ByName  SearchBy = "name"
	ByEmail SearchBy = "email"
)

// ParseSearchBy разбирает дискриминатор поиска без учёта регистра.
func ParseSearchBy(s string) (SearchBy, error) {
	switch by := SearchBy(strings.ToLower(strings.TrimSpace(s))); by {
	case ByName, ByEmail:
		return by, nil
	default:
		return "", fmt.Errorf("unknown search field %q", s)
	}
}

// Directory — контракт справочника людей.
type Directory interface {
	// Person возвращает человека по roster-идентификатору. Если его нет — ErrNotFound.
	Person(ctx context.Context, id string) (*models.Person, error)

	// Search ищет людей по подстроке (без учёта регистра) в имени («имя фамилия») или e-mail.
	// Возвращает не более limit людей в стабильном порядке (фамилия, имя, id)
	// и общее число совпадений до ограничения.
	Search(ctx context.Context, by SearchBy, query string, limit int) ([]models.Person, int, error)

	// Team возвращает всех членов команды человека personID, включая его самого,
	// в стабильном порядке. Если человека нет — ErrNotFound.
	Team(ctx context.Context, personID string) ([]models.Person, error)
}

// MatchQuery — общая для реализаций семантика сопоставления Search.
// query должен быть уже нормализован (TrimSpace + нижний регистр).
func MatchQuery(p models.Person, by SearchBy, query string) bool {
	switch by {
	case ByEmail:
		return strings.Contains(models.NormalizeEmail(p.Email), query)
	case ByName:
		return strings.Contains(strings.ToLower(p.FullName()), query)
	default:
		return false
	}
}

// NormalizeQuery приводит поисковую строку к виду для сопоставления.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// IDs возвращает идентификаторы людей в исходном порядке.
func IDs(people []models.Person) []string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		out = append(out, p.ID)
	}

	return out
}
