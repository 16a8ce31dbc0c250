// cache — read-through кэш справочника людей в Redis.
//
// Кэшируются точечные чтения: Person (Redis Hash) и состав команды (Redis List
// идентификаторов). Search не кэшируется: выдача зависит от произвольного запроса.
// Ошибки Redis не ломают запрос: они логируются, чтение уходит в справочник.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/pkg/log"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "celebrations:dir:"

// Cache оборачивает directory.Directory.
type Cache struct {
	next   directory.Directory
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

var _ directory.Directory = (*Cache)(nil)

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0) и проверяет соединение.
func New(ctx context.Context, next directory.Directory, redisURL string, ttl time.Duration) (*Cache, error) {
	const op = "directory/cache/New"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse redis url: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Cache{next: next, rdb: rdb, ttl: ttl, prefix: defaultPrefix}, nil
}

func (c *Cache) personKey(id string) string { return c.prefix + "person:" + id }
func (c *Cache) teamKey(id string) string   { return c.prefix + "team:" + id }

// Person: HGETALL -> при промахе справочник и HSET+EXPIRE.
func (c *Cache) Person(ctx context.Context, id string) (*models.Person, error) {
	if p, ok := c.getPerson(ctx, id); ok {
		return p, nil
	}

	p, err := c.next.Person(ctx, id)
	if err != nil {
		return nil, err
	}

	c.setPerson(ctx, p)
	return p, nil
}

// Search всегда идёт в справочник.
func (c *Cache) Search(ctx context.Context, by directory.SearchBy, query string, limit int) ([]models.Person, int, error) {
	return c.next.Search(ctx, by, query, limit)
}

// Team: LRANGE идентификаторов, затем Person для каждого; любой промах — полный запрос в справочник.
func (c *Cache) Team(ctx context.Context, personID string) ([]models.Person, error) {
	if team, ok := c.getTeam(ctx, personID); ok {
		return team, nil
	}

	team, err := c.next.Team(ctx, personID)
	if err != nil {
		return nil, err
	}

	c.setTeam(ctx, personID, team)
	return team, nil
}

// Ping — проверка готовности для /healthz.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close закрывает клиент Redis.
func (c *Cache) Close() error { return c.rdb.Close() }

// Храним как Redis Hash с полями id, first, last, email, avatar, job, team.
func (c *Cache) getPerson(ctx context.Context, id string) (*models.Person, bool) {
	m, err := c.rdb.HGetAll(ctx, c.personKey(id)).Result()
	if err != nil {
		c.warn(ctx, "hgetall", err)
		return nil, false
	}

	if len(m) == 0 {
		return nil, false
	}

	return &models.Person{
		ID:        m["id"],
		FirstName: m["first"],
		LastName:  m["last"],
		Email:     m["email"],
		AvatarURL: m["avatar"],
		JobTitle:  m["job"],
		TeamID:    m["team"],
	}, true
}

func (c *Cache) setPerson(ctx context.Context, p *models.Person) {
	kv := map[string]string{
		"id":     p.ID,
		"first":  p.FirstName,
		"last":   p.LastName,
		"email":  p.Email,
		"avatar": p.AvatarURL,
		"job":    p.JobTitle,
		"team":   p.TeamID,
	}

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, c.personKey(p.ID), kv)
	pipe.Expire(ctx, c.personKey(p.ID), c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		c.warn(ctx, "hset", err)
	}
}

func (c *Cache) getTeam(ctx context.Context, personID string) ([]models.Person, bool) {
	ids, err := c.rdb.LRange(ctx, c.teamKey(personID), 0, -1).Result()
	if err != nil {
		c.warn(ctx, "lrange", err)
		return nil, false
	}

	if len(ids) == 0 {
		return nil, false
	}

	team := make([]models.Person, 0, len(ids))
	for _, id := range ids {
		p, ok := c.getPerson(ctx, id)
		if !ok {
			return nil, false
		}
		team = append(team, *p)
	}

	return team, true
}

func (c *Cache) setTeam(ctx context.Context, personID string, team []models.Person) {
	if len(team) == 0 {
		return
	}

	for i := range team {
		c.setPerson(ctx, &team[i])
	}

	ids := make([]any, 0, len(team))
	for _, p := range team {
		ids = append(ids, p.ID)
	}

	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, c.teamKey(personID))
	pipe.RPush(ctx, c.teamKey(personID), ids...)
	pipe.Expire(ctx, c.teamKey(personID), c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		c.warn(ctx, "rpush", err)
	}
}

func (c *Cache) warn(ctx context.Context, cmd string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}

	log.From(ctx).Warn("directory cache unavailable", "cmd", cmd, "err", err)
}
