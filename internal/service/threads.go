package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/storage"
	"github.com/pribylovaa/celebrations-service/pkg/log"
)

// ThreadInput — параметры выдачи ветки.
type ThreadInput struct {
	CelebrationID string
	// Cursor — непрозрачный токен из предыдущего ответа; пустой или nil UUID — начало.
	Cursor string
}

// ThreadResult — празднование и страница корневых комментариев с ответами.
type ThreadResult struct {
	Celebration CelebrationView
	Comments    []models.ThreadNode
	// TotalComments — число видимых вызывающему корневых комментариев.
	TotalComments int64
	NextCursor    string
}

// PostCommentInput — новый комментарий или ответ.
type PostCommentInput struct {
	CelebrationID string
	// ParentID — пустой или nil UUID для корневого комментария.
	ParentID  string
	Text      string
	IsPrivate bool
}

// PostCommentResult — снимок празднования после записи и созданный комментарий.
type PostCommentResult struct {
	Celebration CelebrationView
	Comment     models.ThreadNode
}

// Thread возвращает страницу ветки празднования.
// Корневые комментарии — в порядке создания, ответы встроены и не пагинируются.
// Приватные комментарии, невидимые вызывающему, скрываются вместе с ответами.
//
// Ошибки:
//   - ErrInvalidArgument — пустой celebrationId, битый курсор;
//   - ErrNotFound — празднования нет;
//   - ErrInternal — прочие ошибки.
func (s *Service) Thread(ctx context.Context, caller models.Caller, in ThreadInput) (*ThreadResult, error) {
	const op = "service/threads/Thread"

	lg := log.Op(ctx, op, "caller", caller.PersonID, "celebration_id", in.CelebrationID)

	id := strings.TrimSpace(in.CelebrationID)
	if id == "" {
		lg.Warn("invalid argument: empty celebration_id")
		return nil, detail(op, ErrInvalidArgument, "celebrationId is required")
	}

	offset, err := decodeThreadCursor(in.Cursor)
	if err != nil {
		lg.Warn("invalid argument: cursor", "err", err)
		return nil, detail(op, ErrInvalidArgument, "malformed cursor")
	}

	pageSize := int64(s.limits.ThreadPageSize)
	if offset > math.MaxInt64-pageSize {
		lg.Warn("invalid argument: cursor overflow", "offset", offset)
		return nil, detail(op, ErrInvalidArgument, "malformed cursor")
	}

	c, err := s.storage.CelebrationByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("celebration not found")
			return nil, detail(op, ErrNotFound, "celebration %q not found", id)
		}

		return nil, internalErr(lg, op, "storage error on CelebrationByID", err)
	}

	comments, err := s.storage.ThreadComments(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, detail(op, ErrNotFound, "celebration %q not found", id)
		}

		return nil, internalErr(lg, op, "storage error on ThreadComments", err)
	}

	myTeam, err := s.callerTeam(ctx, caller)
	if err != nil {
		return nil, internalErr(lg, op, "directory error on Team", err)
	}

	roots := buildThread(comments, caller, c.Celebrator.ID)

	out := &ThreadResult{
		Celebration:   view(*c, caller, myTeam),
		Comments:      []models.ThreadNode{},
		TotalComments: int64(len(roots)),
		NextCursor:    encodeThreadCursor(offset + pageSize),
	}

	if offset < out.TotalComments {
		end := min(offset+pageSize, out.TotalComments)
		out.Comments = roots[offset:end]
	}

	lg.Debug("thread loaded", "total", out.TotalComments, "returned", len(out.Comments))
	return out, nil
}

// buildThread собирает видимое вызывающему дерево из плоского списка (порядок Seq сохраняется).
func buildThread(comments []models.Comment, caller models.Caller, celebratorID string) []models.ThreadNode {
	children := make(map[string][]models.Comment, len(comments))
	for _, c := range comments {
		children[c.ParentID] = append(children[c.ParentID], c)
	}

	var build func(parentID string) []models.ThreadNode
	build = func(parentID string) []models.ThreadNode {
		nodes := []models.ThreadNode{}
		for _, c := range children[parentID] {
			if !c.VisibleTo(caller, celebratorID) {
				continue
			}

			nodes = append(nodes, models.ThreadNode{Comment: c, Replies: build(c.ID)})
		}

		return nodes
	}

	return build("")
}

// PostComment добавляет комментарий или ответ от имени вызывающего.
//
// Ошибки:
//   - ErrInvalidArgument — пустой/слишком длинный текст, превышена глубина ответа;
//   - ErrPermissionDenied — вызывающий неизвестен, canContribute=false,
//     приватный комментарий при allowPrivateComments=false;
//   - ErrNotFound — празднования нет, родителя нет или он скрыт от вызывающего;
//   - ErrInternal — прочие ошибки.
func (s *Service) PostComment(ctx context.Context, caller models.Caller, in PostCommentInput) (*PostCommentResult, error) {
	const op = "service/threads/PostComment"

	lg := log.Op(ctx, op,
		"caller", caller.PersonID,
		"celebration_id", in.CelebrationID,
		"parent_id", in.ParentID,
		"is_private", in.IsPrivate,
	)

	id := strings.TrimSpace(in.CelebrationID)
	if id == "" {
		lg.Warn("invalid argument: empty celebration_id")
		return nil, detail(op, ErrInvalidArgument, "celebrationId is required")
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		lg.Warn("invalid argument: empty comment")
		return nil, detail(op, ErrInvalidArgument, "comment must not be empty")
	}

	if n := utf8.RuneCountInString(text); n > int(s.limits.CommentMaxLen) {
		lg.Warn("invalid argument: comment too long", "len", n)
		return nil, detail(op, ErrInvalidArgument, "comment must be at most %d characters", s.limits.CommentMaxLen)
	}

	if caller.Anonymous() {
		lg.Warn("permission denied: anonymous caller")
		return nil, detail(op, ErrPermissionDenied, "caller identity is required to comment")
	}

	contributor, err := s.directory.Person(ctx, caller.PersonID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			lg.Warn("permission denied: caller not in directory")
			return nil, detail(op, ErrPermissionDenied, "caller %q is not in the directory", caller.PersonID)
		}

		return nil, internalErr(lg, op, "directory error on Person", err)
	}

	c, err := s.storage.CelebrationByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("celebration not found")
			return nil, detail(op, ErrNotFound, "celebration %q not found", id)
		}

		return nil, internalErr(lg, op, "storage error on CelebrationByID", err)
	}

	if !c.CanContribute {
		lg.Warn("permission denied: contributions closed")
		return nil, detail(op, ErrPermissionDenied, "celebration does not accept contributions")
	}

	if in.IsPrivate && !c.AllowPrivateComments {
		lg.Warn("permission denied: private comments disabled")
		return nil, detail(op, ErrPermissionDenied, "private comments are not allowed for this celebration")
	}

	parentID := ""
	if !emptyRef(in.ParentID) {
		parentID = strings.TrimSpace(in.ParentID)

		parent, err := s.visibleComment(ctx, caller, c, parentID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				lg.Warn("parent not found")
				return nil, detail(op, ErrNotFound, "comment %q not found", parentID)
			}

			return nil, internalErr(lg, op, "storage error on CommentByID", err)
		}

		if parent.Level+1 > s.limits.MaxDepth {
			lg.Warn("invalid argument: reply depth", "parent_level", parent.Level)
			return nil, detail(op, ErrInvalidArgument, "replies deeper than %d level(s) are not allowed", s.limits.MaxDepth)
		}
	}

	created, err := s.storage.AppendComment(ctx, models.Comment{
		CelebrationID: c.ID,
		ParentID:      parentID,
		IsPrivate:     in.IsPrivate,
		Text:          text,
		Contributor:   *contributor,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrParentNotFound):
			lg.Warn("parent not found")
			return nil, detail(op, ErrNotFound, "comment %q not found", parentID)
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("celebration not found")
			return nil, detail(op, ErrNotFound, "celebration %q not found", id)
		default:
			return nil, internalErr(lg, op, "storage error on AppendComment", err)
		}
	}

	// Снимок после записи: hasContributed уже учитывает новый комментарий.
	after, err := s.storage.CelebrationByID(ctx, c.ID)
	if err != nil {
		return nil, internalErr(lg, op, "storage error on CelebrationByID", err)
	}

	myTeam, err := s.callerTeam(ctx, caller)
	if err != nil {
		return nil, internalErr(lg, op, "directory error on Team", err)
	}

	lg.Info("comment posted", "comment_id", created.ID, "seq", created.Seq)

	return &PostCommentResult{
		Celebration: view(*after, caller, myTeam),
		Comment:     models.ThreadNode{Comment: *created, Replies: []models.ThreadNode{}},
	}, nil
}

// visibleComment возвращает комментарий, если он и все его предки видимы вызывающему.
// Скрытый комментарий неотличим от отсутствующего (storage.ErrNotFound).
func (s *Service) visibleComment(ctx context.Context, caller models.Caller, c *models.Celebration, id string) (*models.Comment, error) {
	target, err := s.storage.CommentByID(ctx, c.ID, id)
	if err != nil {
		return nil, err
	}

	for cur := target; ; {
		if !cur.VisibleTo(caller, c.Celebrator.ID) {
			return nil, storage.ErrNotFound
		}

		if cur.IsRoot() {
			return target, nil
		}

		if cur, err = s.storage.CommentByID(ctx, c.ID, cur.ParentID); err != nil {
			return nil, err
		}
	}
}
