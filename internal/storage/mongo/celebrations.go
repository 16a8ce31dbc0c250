package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateCelebration вставляет празднование. Invitees/Contributors всегда пишутся массивами,
// иначе $push/$addToSet на null-поле завершатся ошибкой.
func (m *Mongo) CreateCelebration(ctx context.Context, c models.Celebration) (*models.Celebration, error) {
	const op = "storage/mongo/CreateCelebration"

	rec := c.Clone()
	if strings.TrimSpace(rec.ID) == "" {
		rec.ID = uuid.NewString()
	}

	rec.Version = 0
	rec.CommentSeq = 0
	rec.Date = toMS(rec.Date)
	rec.CreatedAt = toMS(time.Now())
	if n := int32(len(rec.Invitees)); rec.TotalInvites < n {
		rec.TotalInvites = n
	}

	if rec.Invitees == nil {
		rec.Invitees = []models.Invitee{}
	}

	if rec.Contributors == nil {
		rec.Contributors = []string{}
	}

	for i := range rec.Invitees {
		rec.Invitees[i].InvitedAt = toMS(rec.Invitees[i].InvitedAt)
	}

	if _, err := m.celebrations.InsertOne(ctx, rec); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	return &rec, nil
}

// CelebrationByID возвращает празднование по идентификатору.
func (m *Mongo) CelebrationByID(ctx context.Context, id string) (*models.Celebration, error) {
	const op = "storage/mongo/CelebrationByID"

	var out models.Celebration
	err := m.celebrations.FindOne(ctx, bson.D{{Key: "_id", Value: strings.TrimSpace(id)}}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	normalizeCelebration(&out)
	return &out, nil
}

// SearchCelebrations — CountDocuments + Find с тем же фильтром.
// Две операции не атомарны: при параллельной вставке Total может разойтись со страницей.
func (m *Mongo) SearchCelebrations(ctx context.Context, q models.CelebrationQuery) (*models.CelebrationPage, error) {
	const op = "storage/mongo/SearchCelebrations"

	filter := searchFilter(q)

	total, err := m.celebrations.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: count: %w", op, err)
	}

	page := &models.CelebrationPage{Total: total}
	if q.Offset >= total || q.Limit <= 0 {
		return page, nil
	}

	dir := 1
	if q.Period == models.PeriodPast {
		dir = -1
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "date", Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(q.Offset).
		SetLimit(q.Limit)

	cur, err := m.celebrations.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var c models.Celebration
		if err := cur.Decode(&c); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		normalizeCelebration(&c)
		page.Items = append(page.Items, c)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return page, nil
}

// AddInvitees — CAS: документ обновляется, только если version не изменилась.
func (m *Mongo) AddInvitees(ctx context.Context, celebrationID string, version int64, added []models.Invitee) (*models.Celebration, error) {
	const op = "storage/mongo/AddInvitees"

	docs := make([]models.Invitee, len(added))
	for i, inv := range added {
		inv.InvitedAt = toMS(inv.InvitedAt)
		docs[i] = inv
	}

	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "invitees", Value: bson.D{{Key: "$each", Value: docs}}}}},
		{Key: "$inc", Value: bson.D{
			{Key: "total_invites", Value: int32(len(docs))},
			{Key: "version", Value: int64(1)},
		}},
	}

	var out models.Celebration
	err := m.celebrations.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: celebrationID}, {Key: "version", Value: version}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)

	if err == nil {
		normalizeCelebration(&out)
		return &out, nil
	}

	if !errors.Is(err, mongodriver.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Не совпало: либо записи нет, либо версия ушла вперёд.
	n, cntErr := m.celebrations.CountDocuments(ctx, bson.D{{Key: "_id", Value: celebrationID}})
	if cntErr != nil {
		return nil, fmt.Errorf("%s: count: %w", op, cntErr)
	}

	if n == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
}

// searchFilter переводит запрос в bson-фильтр.
func searchFilter(q models.CelebrationQuery) bson.D {
	filter := bson.D{}

	if q.CelebratorEmail != "" {
		filter = append(filter, bson.E{Key: "celebrator.email", Value: exactFold(models.NormalizeEmail(q.CelebratorEmail))})
	}

	if name := strings.Join(strings.Fields(q.CelebratorName), " "); name != "" {
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "celebrator.first_name", Value: exactFold(name)}},
			bson.D{{Key: "celebrator.last_name", Value: exactFold(name)}},
			bson.D{{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{
				bson.D{{Key: "$toLower", Value: bson.D{{Key: "$concat", Value: bson.A{"$celebrator.first_name", " ", "$celebrator.last_name"}}}}},
				strings.ToLower(name),
			}}}}},
		}})
	}

	ids := bson.D{}
	if q.CelebratorIn != nil {
		ids = append(ids, bson.E{Key: "$in", Value: q.CelebratorIn})
	}

	if len(q.CelebratorNotIn) > 0 {
		ids = append(ids, bson.E{Key: "$nin", Value: q.CelebratorNotIn})
	}

	if len(ids) > 0 {
		filter = append(filter, bson.E{Key: "celebrator.id", Value: ids})
	}

	date := bson.D{}
	switch q.Period {
	case models.PeriodFuture:
		date = append(date, bson.E{Key: "$gt", Value: toMS(q.Now)})
	case models.PeriodPast:
		date = append(date, bson.E{Key: "$lte", Value: toMS(q.Now)})
	}

	// Повторные операторы в одном документе недопустимы, поэтому границы периода
	// и явные границы объединяются через $and.
	var bounds bson.A
	if !q.NotBefore.IsZero() {
		bounds = append(bounds, bson.D{{Key: "date", Value: bson.D{{Key: "$gte", Value: toMS(q.NotBefore)}}}})
	}

	if !q.NotAfter.IsZero() {
		bounds = append(bounds, bson.D{{Key: "date", Value: bson.D{{Key: "$lte", Value: toMS(q.NotAfter)}}}})
	}

	if len(date) > 0 {
		bounds = append(bounds, bson.D{{Key: "date", Value: date}})
	}

	if len(bounds) > 0 {
		filter = append(filter, bson.E{Key: "$and", Value: bounds})
	}

	return filter
}

// exactFold — регулярное выражение для точного совпадения без учёта регистра.
func exactFold(s string) bson.D {
	return bson.D{
		{Key: "$regex", Value: "^" + regexp.QuoteMeta(s) + "$"},
		{Key: "$options", Value: "i"},
	}
}

// normalizeCelebration приводит времена к UTC.
func normalizeCelebration(c *models.Celebration) {
	c.Date = c.Date.UTC()
	c.CreatedAt = c.CreatedAt.UTC()
	for i := range c.Invitees {
		c.Invitees[i].InvitedAt = c.Invitees[i].InvitedAt.UTC()
	}
}
