package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/storage"
)

// CreateCelebration сохраняет новое празднование.
func (m *Memory) CreateCelebration(ctx context.Context, c models.Celebration) (*models.Celebration, error) {
	const op = "storage/memory/CreateCelebration"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec := c.Clone()
	if strings.TrimSpace(rec.ID) == "" {
		rec.ID = uuid.NewString()
	}

	rec.Version = 0
	rec.CommentSeq = 0
	rec.CreatedAt = m.now().UTC()
	if n := int32(len(rec.Invitees)); rec.TotalInvites < n {
		rec.TotalInvites = n
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.celebrations[rec.ID]; ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}

	m.celebrations[rec.ID] = &rec
	out := rec.Clone()

	return &out, nil
}

// CelebrationByID возвращает копию празднования.
func (m *Memory) CelebrationByID(ctx context.Context, id string) (*models.Celebration, error) {
	const op = "storage/memory/CelebrationByID"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.RLock()
	rec, ok := m.celebrations[strings.TrimSpace(id)]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	out := rec.Clone()
	return &out, nil
}

// SearchCelebrations фильтрует снимок всех записей, сортирует и режет страницу.
func (m *Memory) SearchCelebrations(ctx context.Context, q models.CelebrationQuery) (*models.CelebrationPage, error) {
	const op = "storage/memory/SearchCelebrations"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Записи неизменяемы, поэтому достаточно скопировать указатели под RLock.
	m.mu.RLock()
	snapshot := make([]*models.Celebration, 0, len(m.celebrations))
	for _, rec := range m.celebrations {
		snapshot = append(snapshot, rec)
	}
	m.mu.RUnlock()

	matched := make([]*models.Celebration, 0, len(snapshot))
	for _, rec := range snapshot {
		if matches(rec, q) {
			matched = append(matched, rec)
		}
	}

	desc := q.Period == models.PeriodPast
	slices.SortFunc(matched, func(a, b *models.Celebration) int {
		c := a.Date.Compare(b.Date)
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if desc {
			return -c
		}
		return c
	})

	page := &models.CelebrationPage{Total: int64(len(matched))}
	if q.Offset >= page.Total || q.Limit <= 0 {
		return page, nil
	}

	end := min(q.Offset+q.Limit, page.Total)
	page.Items = make([]models.Celebration, 0, end-q.Offset)
	for _, rec := range matched[q.Offset:end] {
		page.Items = append(page.Items, rec.Clone())
	}

	return page, nil
}

// AddInvitees — CAS по Version.
func (m *Memory) AddInvitees(ctx context.Context, celebrationID string, version int64, added []models.Invitee) (*models.Celebration, error) {
	const op = "storage/memory/AddInvitees"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.celebrations[celebrationID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if cur.Version != version {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
	}

	next := cur.Clone()
	next.Invitees = append(next.Invitees, added...)
	next.TotalInvites += int32(len(added))
	next.Version++
	m.celebrations[celebrationID] = &next

	out := next.Clone()
	return &out, nil
}

// matches проверяет запись на соответствие всем фильтрам запроса.
func matches(c *models.Celebration, q models.CelebrationQuery) bool {
	if q.CelebratorEmail != "" && models.NormalizeEmail(c.Celebrator.Email) != models.NormalizeEmail(q.CelebratorEmail) {
		return false
	}

	if q.CelebratorName != "" && !nameMatches(c.Celebrator, q.CelebratorName) {
		return false
	}

	if q.CelebratorIn != nil && !slices.Contains(q.CelebratorIn, c.Celebrator.ID) {
		return false
	}

	if slices.Contains(q.CelebratorNotIn, c.Celebrator.ID) {
		return false
	}

	switch q.Period {
	case models.PeriodFuture:
		if !c.Date.After(q.Now) {
			return false
		}
	case models.PeriodPast:
		if c.Date.After(q.Now) {
			return false
		}
	}

	if !q.NotBefore.IsZero() && c.Date.Before(q.NotBefore) {
		return false
	}

	if !q.NotAfter.IsZero() && c.Date.After(q.NotAfter) {
		return false
	}

	return true
}

// nameMatches — точное совпадение (без учёта регистра) с именем, фамилией или «имя фамилия».
func nameMatches(p models.Person, name string) bool {
	name = strings.Join(strings.Fields(name), " ")

	return strings.EqualFold(p.FirstName, name) ||
		strings.EqualFold(p.LastName, name) ||
		strings.EqualFold(p.FullName(), name)
}
