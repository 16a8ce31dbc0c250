// memory предоставляет реализацию storage.Storage в памяти процесса.
//
// Модель согласованности:
//   - записи празднований неизменяемы после публикации в карте: любое изменение
//     собирает новую копию и подменяет указатель под эксклюзивной блокировкой;
//   - читатели берут RLock и копируют нужное, поэтому видят согласованный снимок
//     и не блокируют писателей дольше копирования;
//   - AddInvitees — CAS по Version, AppendComment — под эксклюзивной блокировкой
//     (назначение Seq и дописывание в ветку атомарны).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/storage"
)

// Memory — хранилище празднований и комментариев в памяти.
type Memory struct {
	mu           sync.RWMutex
	celebrations map[string]*models.Celebration
	// threads — комментарии празднования в порядке Seq.
	threads map[string][]models.Comment
	now     func() time.Time
}

// New создаёт пустое хранилище.
func New() *Memory {
	return &Memory{
		celebrations: make(map[string]*models.Celebration),
		threads:      make(map[string][]models.Comment),
		now:          time.Now,
	}
}

// Close ничего не освобождает; метод нужен для контракта storage.Storage.
func (m *Memory) Close(context.Context) error {
	return nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.Storage = (*Memory)(nil)
