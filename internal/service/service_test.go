package service

// Тесты сервисного слоя celebrations-service.
//
//  Проверяем:
//  - поиск: фильтры, пагинацию (nextCursor = cursor + limit), полноту страниц, валидацию;
//  - ветки: порядок, видимость приватных комментариев, курсор, правила записи;
//  - приглашения: дедупликацию, атомарность, CAS-повторы, подсказки;
//  - find_invitees: ограничение выдачи и total до ограничения;
//  - маппинг ошибок storage/directory -> service.
//
// Подготовка окружения:
//   # 1) Сгенерировать моки интерфейсов хранилища и справочника:
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks
//   mockgen -source=./internal/directory/directory.go -destination=./mocks/directory.go -package=mocks
//
//   # 2) Запустить тесты:
//   go test ./internal/service -v -race -count=1

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pribylovaa/celebrations-service/internal/config"
	"github.com/pribylovaa/celebrations-service/internal/directory/roster"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/storage/memory"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// Люди тестового справочника.
var (
	ada     = models.Person{ID: "p-ada", FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.io", TeamID: "engines"}
	charles = models.Person{ID: "p-charles", FirstName: "Charles", LastName: "Babbage", Email: "charles@x.io", TeamID: "engines"}
	kate    = models.Person{ID: "p-kate", FirstName: "Katherine", LastName: "Johnson", Email: "kate@x.io", TeamID: "engines"}
	grace   = models.Person{ID: "p-grace", FirstName: "Grace", LastName: "Hopper", Email: "grace@x.io", TeamID: "compilers"}
	alan    = models.Person{ID: "p-alan", FirstName: "Alan", LastName: "Turing", TeamID: "compilers"}
)

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{
		SearchMax:       100,
		ThreadPageSize:  2,
		MaxDepth:        1,
		CommentMaxLen:   20,
		Suggestions:     5,
		FindResults:     2,
		ConflictRetries: 3,
	}
}

// env — сервис поверх настоящего in-memory хранилища и roster-справочника.
type env struct {
	svc   *Service
	store *memory.Memory
}

func newEnv(t *testing.T) *env {
	t.Helper()

	dir, err := roster.New([]models.Person{ada, charles, kate, grace, alan})
	require.NoError(t, err)

	store := memory.New()
	svc := New(store, dir, config.Config{Limits: testLimits()})
	svc.now = func() time.Time { return fixedNow }

	return &env{svc: svc, store: store}
}

func (e *env) celebration(t *testing.T, c models.Celebration) *models.Celebration {
	t.Helper()
	if c.MilestoneName == "" {
		c.MilestoneName = "5 years"
	}

	out, err := e.store.CreateCelebration(context.Background(), c)
	require.NoError(t, err)
	return out
}

func as(p models.Person) models.Caller {
	return models.Caller{PersonID: p.ID}
}

func days(n int) time.Time {
	return fixedNow.AddDate(0, 0, n)
}

// seedSearch заполняет хранилище n будущими празднованиями разных людей.
func (e *env) seedSearch(t *testing.T, n int) {
	t.Helper()
	people := []models.Person{ada, charles, kate, grace, alan}
	for i := range n {
		e.celebration(t, models.Celebration{
			ID:         fmt.Sprintf("c%03d", i),
			Date:       days(1 + i%7),
			Celebrator: people[i%len(people)],
		})
	}
}
