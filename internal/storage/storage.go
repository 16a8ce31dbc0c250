package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/celebrations-service/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — запись с таким идентификатором уже есть.
	ErrAlreadyExists = errors.New("already exists")
	// ErrConflict — версия записи изменилась между чтением и записью (оптимистическая блокировка).
	ErrConflict = errors.New("conflict")
	// ErrParentNotFound — указан parent_id, но родитель не найден в этом празднике.
	ErrParentNotFound = errors.New("parent not found")
)

// CelebrationStore описывает операции над празднованиями, списками приглашённых и участников.
type CelebrationStore interface {
	// CreateCelebration сохраняет новое празднование (обнаружение юбилеев — вне сервиса,
	// здесь это точка входа для сидов и внешнего импорта).
	// Если ID пуст — генерируется UUID. Version/CommentSeq обнуляются,
	// TotalInvites не может быть меньше len(Invitees).
	// Возможные ошибки: ErrAlreadyExists.
	CreateCelebration(ctx context.Context, c models.Celebration) (*models.Celebration, error)

	// CelebrationByID возвращает снимок празднования. Если записи нет — ErrNotFound.
	CelebrationByID(ctx context.Context, id string) (*models.Celebration, error)

	// SearchCelebrations фильтрует, сортирует (future: date ASC, id ASC; past: date DESC, id DESC)
	// и режет страницу [Offset, Offset+Limit). Total — размер отфильтрованного множества.
	SearchCelebrations(ctx context.Context, q models.CelebrationQuery) (*models.CelebrationPage, error)

	// AddInvitees дописывает приглашённых и увеличивает TotalInvites на len(added),
	// только если текущая Version == version (CAS). Version увеличивается на 1.
	// Возможные ошибки: ErrNotFound, ErrConflict (версия изменилась).
	AddInvitees(ctx context.Context, celebrationID string, version int64, added []models.Invitee) (*models.Celebration, error)
}

// ThreadStore описывает операции над ветками комментариев празднования.
type ThreadStore interface {
	// AppendComment добавляет комментарий в конец ветки празднования.
	// Входной Comment должен содержать CelebrationID, Contributor, Text;
	// ParentID — опционально (ответ).
	// Хранилище проставляет ID, Seq (следующий номер в празднике), CreatedAt;
	// для ответа проверяет, что родитель существует в том же празднике, и выставляет Level = parent.Level + 1.
	// Автор добавляется в Contributors празднования.
	// Возможные ошибки: ErrNotFound (празднования нет), ErrParentNotFound.
	AppendComment(ctx context.Context, comment models.Comment) (*models.Comment, error)

	// CommentByID возвращает комментарий празднования. Если записи нет — ErrNotFound.
	CommentByID(ctx context.Context, celebrationID, id string) (*models.Comment, error)

	// ThreadComments возвращает все комментарии празднования одним снимком,
	// упорядоченные по Seq (порядок создания).
	ThreadComments(ctx context.Context, celebrationID string) ([]models.Comment, error)
}

// Storage объединяет оба хранилища; реализации (memory, mongo) закрывают ресурсы в Close.
type Storage interface {
	CelebrationStore
	ThreadStore

	// Close закрывает соединения/ресурсы хранилища.
	Close(ctx context.Context) error
}
