// postgres предоставляет реализацию directory.Directory на базе PostgreSQL (таблица people).
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pribylovaa/celebrations-service/internal/directory"
)

type Directory struct {
	db *pgxpool.Pool
}

// New создаёт и инициализирует пул соединений к PostgreSQL.
func New(ctx context.Context, dbURL string) (*Directory, error) {
	const op = "directory/postgres/New"

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Directory{db: db}, nil
}

// Ping — проверка готовности для /healthz.
func (d *Directory) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

// Close закрывает пул соединений.
// Должен вызываться при остановке приложения.
func (d *Directory) Close() {
	d.db.Close()
}

// Проверка выполнения контракта верхнего уровня.
var _ directory.Directory = (*Directory)(nil)
