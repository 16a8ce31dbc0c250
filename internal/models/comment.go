package models

import "time"

// Comment — комментарий или ответ к празднованию.
// Важно:
//   - хранится плоско; дерево собирает сервис по ParentID;
//   - Level — глубина (корень = 0), проверяется на запись по cfg.Limits.MaxDepth;
//   - Seq — порядковый номер в пределах празднования, задаёт порядок создания;
//   - Text после создания не меняется.
type Comment struct {
	ID            string    `bson:"_id"`
	CelebrationID string    `bson:"celebration_id"`
	ParentID      string    `bson:"parent_id"`
	Level         int32     `bson:"level"`
	Seq           int64     `bson:"seq"`
	IsPrivate     bool      `bson:"is_private"`
	TotalLikes    int32     `bson:"total_likes"`
	Text          string    `bson:"text"`
	Contributor   Person    `bson:"contributor"`
	CreatedAt     time.Time `bson:"created_at"`
}

// IsRoot сообщает, является ли комментарий корневым.
func (c *Comment) IsRoot() bool {
	return c.ParentID == ""
}

// VisibleTo — виден ли комментарий вызывающему.
// Приватный комментарий видят только празднующий и автор.
func (c *Comment) VisibleTo(caller Caller, celebratorID string) bool {
	if !c.IsPrivate {
		return true
	}

	return caller.Is(celebratorID) || caller.Is(c.Contributor.ID)
}

// ThreadNode — узел дерева комментариев для выдачи.
type ThreadNode struct {
	Comment Comment
	Replies []ThreadNode
}
