package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// compensateTimeout — дедлайн отката вставленного комментария.
const compensateTimeout = 5 * time.Second

// AppendComment добавляет комментарий в ветку празднования.
//   - для ответа находит родителя в той же ветке и выставляет Level = parent.Level + 1;
//   - Seq выделяется атомарным $inc comment_seq на документе празднования;
//   - автор попадает в contributors ($addToSet) только после успешной вставки комментария.
//
// Если $addToSet не удался, вставленный комментарий удаляется: наружу не видно
// ни комментария без автора в contributors, ни автора без комментария.
// Неудачная вставка оставляет пропуск в Seq, порядок ветки от этого не меняется.
func (m *Mongo) AppendComment(ctx context.Context, comm models.Comment) (*models.Comment, error) {
	const op = "storage/mongo/AppendComment"

	comm.ParentID = strings.TrimSpace(comm.ParentID)
	comm.Level = 0

	if comm.ParentID != "" {
		var parent models.Comment
		err := m.comments.FindOne(ctx, bson.D{
			{Key: "_id", Value: comm.ParentID},
			{Key: "celebration_id", Value: comm.CelebrationID},
		}).Decode(&parent)
		if err != nil {
			if errors.Is(err, mongodriver.ErrNoDocuments) {
				return nil, fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
			}

			return nil, fmt.Errorf("%s: find parent: %w", op, err)
		}

		comm.Level = parent.Level + 1
	}

	var cel struct {
		CommentSeq int64 `bson:"comment_seq"`
	}

	err := m.celebrations.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: comm.CelebrationID}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "comment_seq", Value: int64(1)}}}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.D{{Key: "comment_seq", Value: 1}}),
	).Decode(&cel)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: allocate seq: %w", op, err)
	}

	comm.ID = uuid.NewString()
	comm.Seq = cel.CommentSeq
	comm.CreatedAt = toMS(time.Now())

	if _, err := m.comments.InsertOne(ctx, comm); err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	_, err = m.celebrations.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: comm.CelebrationID}},
		bson.D{{Key: "$addToSet", Value: bson.D{{Key: "contributors", Value: comm.Contributor.ID}}}},
	)
	if err != nil {
		// Откат не зависит от отмены запроса: иначе комментарий останется без автора в contributors.
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
		defer cancel()

		if _, derr := m.comments.DeleteOne(cctx, bson.D{{Key: "_id", Value: comm.ID}}); derr != nil {
			return nil, fmt.Errorf("%s: add contributor: %w (rollback: %v)", op, err, derr)
		}

		return nil, fmt.Errorf("%s: add contributor: %w", op, err)
	}

	return &comm, nil
}

// CommentByID возвращает комментарий празднования.
func (m *Mongo) CommentByID(ctx context.Context, celebrationID, id string) (*models.Comment, error) {
	const op = "storage/mongo/CommentByID"

	var out models.Comment
	err := m.comments.FindOne(ctx, bson.D{
		{Key: "_id", Value: strings.TrimSpace(id)},
		{Key: "celebration_id", Value: celebrationID},
	}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out.CreatedAt = out.CreatedAt.UTC()
	return &out, nil
}

// ThreadComments возвращает всю ветку в порядке seq.
func (m *Mongo) ThreadComments(ctx context.Context, celebrationID string) ([]models.Comment, error) {
	const op = "storage/mongo/ThreadComments"

	n, err := m.celebrations.CountDocuments(ctx, bson.D{{Key: "_id", Value: celebrationID}})
	if err != nil {
		return nil, fmt.Errorf("%s: count: %w", op, err)
	}

	if n == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	cur, err := m.comments.Find(ctx,
		bson.D{{Key: "celebration_id", Value: celebrationID}},
		options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.Comment
	for cur.Next(ctx) {
		var comm models.Comment
		if err := cur.Decode(&comm); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		comm.CreatedAt = comm.CreatedAt.UTC()
		items = append(items, comm)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}
