package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/storage"
)

// AppendComment назначает Seq и дописывает комментарий в ветку под эксклюзивной блокировкой:
// два параллельных ответа одному родителю получат разные Seq и не потеряются.
func (m *Memory) AppendComment(ctx context.Context, comm models.Comment) (*models.Comment, error) {
	const op = "storage/memory/AppendComment"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.celebrations[comm.CelebrationID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	thread := m.threads[comm.CelebrationID]

	comm.ParentID = strings.TrimSpace(comm.ParentID)
	comm.Level = 0
	if comm.ParentID != "" {
		idx := slices.IndexFunc(thread, func(c models.Comment) bool { return c.ID == comm.ParentID })
		if idx < 0 {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
		}
		comm.Level = thread[idx].Level + 1
	}

	next := cur.Clone()
	next.CommentSeq++
	if !next.HasContributed(comm.Contributor.ID) {
		next.Contributors = append(next.Contributors, comm.Contributor.ID)
	}

	comm.ID = uuid.NewString()
	comm.Seq = next.CommentSeq
	comm.CreatedAt = m.now().UTC()

	m.celebrations[comm.CelebrationID] = &next
	// Полная ёмкость среза фиксирует «снимки» читателей: append не перепишет их данные.
	m.threads[comm.CelebrationID] = append(thread[:len(thread):len(thread)], comm)

	return &comm, nil
}

// CommentByID ищет комментарий в ветке празднования.
func (m *Memory) CommentByID(ctx context.Context, celebrationID, id string) (*models.Comment, error) {
	const op = "storage/memory/CommentByID"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.RLock()
	thread := m.threads[celebrationID]
	m.mu.RUnlock()

	id = strings.TrimSpace(id)
	for _, c := range thread {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}

	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// ThreadComments возвращает копию ветки празднования.
func (m *Memory) ThreadComments(ctx context.Context, celebrationID string) ([]models.Comment, error) {
	const op = "storage/memory/ThreadComments"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.RLock()
	_, ok := m.celebrations[celebrationID]
	thread := m.threads[celebrationID]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return slices.Clone(thread), nil
}
