// mongo реализует storage.Storage поверх MongoDB.
//
// Коллекции:
//   - celebrations: документ празднования вместе с invitees/contributors,
//     version (CAS для приглашений) и comment_seq (счётчик Seq для комментариев);
//   - comments: плоская ветка комментариев, упорядоченная по (celebration_id, seq).
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pribylovaa/celebrations-service/internal/config"
	"github.com/pribylovaa/celebrations-service/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	celebrationsCollection = "celebrations"
	commentsCollection     = "comments"
	defaultDBName          = "celebrations"
)

// Mongo — тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	client       *mongodriver.Client
	db           *mongodriver.Database
	celebrations *mongodriver.Collection
	comments     *mongodriver.Collection
}

var _ storage.Storage = (*Mongo)(nil)

// New подключается к MongoDB, проверяет соединение, подготавливает коллекции и индексы.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.Storage.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.Storage.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.Storage.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(cfg.Storage.URL))

	m := &Mongo{
		client:       cli,
		db:           db,
		celebrations: db.Collection(celebrationsCollection),
		comments:     db.Collection(commentsCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ping — проверка готовности для /healthz.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// ensureIndexes создаёт индексы:
//   - поиск: date + _id (обе сортировки), celebrator.id, celebrator.email;
//   - ветка: celebration_id + seq (уникальный, он же порядок выдачи).
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	celebrationIdx := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("date_id"),
		},
		{
			Keys:    bson.D{{Key: "celebrator.id", Value: 1}},
			Options: options.Index().SetName("celebrator_id"),
		},
		{
			Keys:    bson.D{{Key: "celebrator.email", Value: 1}},
			Options: options.Index().SetName("celebrator_email"),
		},
	}

	if _, err := m.celebrations.Indexes().CreateMany(ctx, celebrationIdx); err != nil {
		return fmt.Errorf("mongo ensure celebration indexes: %w", err)
	}

	commentIdx := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "celebration_id", Value: 1}, {Key: "seq", Value: 1}},
			Options: options.Index().SetName("celebration_seq").SetUnique(true),
		},
	}

	if _, err := m.comments.Indexes().CreateMany(ctx, commentIdx); err != nil {
		return fmt.Errorf("mongo ensure comment indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддаётся расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}

// toMS — MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
