// service содержит бизнес-логику celebrations-сервиса:
// поиск празднований, ветки комментариев, приглашения и поиск приглашаемых.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/celebrations-service/internal/config"
	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/storage"
)

var (
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — празднование, комментарий или человек не найдены.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied — действие запрещено настройками празднования или вызывающий неизвестен.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrConflict — оптимистические повторы исчерпаны.
	ErrConflict = errors.New("conflict")
	// ErrInternal — внутренняя ошибка (стораж/справочник/БД).
	ErrInternal = errors.New("internal")
)

// DetailError — ошибка сервиса с пояснением, безопасным для клиента.
// errors.Is(err, ErrInvalidArgument) и т.п. работает через Unwrap.
type DetailError struct {
	Kind   error
	Detail string
}

func (e *DetailError) Error() string {
	return e.Kind.Error() + ": " + e.Detail
}

func (e *DetailError) Unwrap() error {
	return e.Kind
}

// detail оборачивает sentinel пояснением и префиксом операции.
func detail(op string, kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", op, &DetailError{Kind: kind, Detail: fmt.Sprintf(format, args...)})
}

// Service — бизнес-логика celebrations-сервиса.
type Service struct {
	storage   storage.Storage
	directory directory.Directory
	limits    config.LimitsConfig
	now       func() time.Time
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, dir directory.Directory, cfg config.Config) *Service {
	return &Service{
		storage:   storage,
		directory: dir,
		limits:    cfg.Limits,
		now:       time.Now,
	}
}

// internalErr — общий хвост обработки неожиданных ошибок нижних слоёв.
// Ошибки контекста пробрасываются как есть, чтобы транспорт отдал DeadlineExceeded/Canceled.
func internalErr(lg *slog.Logger, op, msg string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		lg.Warn(msg, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Error(msg, "err", err)
	return fmt.Errorf("%s: %w", op, ErrInternal)
}
