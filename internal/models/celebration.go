package models

import (
	"slices"
	"time"
)

// Celebration — запись о юбилее стажа.
// Важно:
//   - Celebrator — снимок человека на момент создания записи (эхо справочника);
//   - Invitees/Contributors принадлежат хранилищу и меняются только через него;
//   - TotalInvites не уменьшается в рамках сервиса (отзыв приглашений — внешнее событие);
//   - Version растёт на каждое изменение списка приглашённых (оптимистическая блокировка).
type Celebration struct {
	ID                   string    `bson:"_id"`
	MilestoneName        string    `bson:"milestone_name"`
	Date                 time.Time `bson:"date"`
	ImageURL             string    `bson:"image_url"`
	TotalInvites         int32     `bson:"total_invites"`
	CanContribute        bool      `bson:"can_contribute"`
	HasCelebratorThanked bool      `bson:"has_celebrator_thanked"`
	AllowPrivateComments bool      `bson:"allow_private_comments"`
	ThankYouMessage      *ThankYou `bson:"thank_you_message,omitempty"`
	Celebrator           Person    `bson:"celebrator"`
	Invitees             []Invitee `bson:"invitees"`
	Contributors         []string  `bson:"contributors"`
	Version              int64     `bson:"version"`
	CommentSeq           int64     `bson:"comment_seq"`
	CreatedAt            time.Time `bson:"created_at"`
}

// ThankYou — ответное сообщение празднующего.
type ThankYou struct {
	Comment    string `bson:"comment"`
	TotalLikes int32  `bson:"total_likes"`
}

// Invitee — приглашённый участник.
// Key — канонический ключ идентичности (нижний регистр e-mail либо "id:<PersonID>"),
// по нему выполняется дедупликация.
type Invitee struct {
	Key       string    `bson:"key"`
	PersonID  string    `bson:"person_id,omitempty"`
	Email     string    `bson:"email"`
	FirstName string    `bson:"first_name"`
	LastName  string    `bson:"last_name"`
	InvitedAt time.Time `bson:"invited_at"`
}

// Internal сообщает, приглашён ли человек по roster-идентификатору.
func (i Invitee) Internal() bool {
	return i.PersonID != ""
}

// PersonKey — ключ идентичности человека из справочника:
// e-mail в нижнем регистре, а при его отсутствии "id:<ID>".
func PersonKey(p Person) string {
	if email := NormalizeEmail(p.Email); email != "" {
		return email
	}

	return "id:" + p.ID
}

// HasContributed — оставлял ли человек комментарии к празднованию.
func (c *Celebration) HasContributed(personID string) bool {
	return personID != "" && slices.Contains(c.Contributors, personID)
}

// InviteeKeys возвращает множество ключей текущих приглашённых.
func (c *Celebration) InviteeKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(c.Invitees))
	for _, inv := range c.Invitees {
		keys[inv.Key] = struct{}{}
	}

	return keys
}

// Clone возвращает глубокую копию записи: срезы и указатели не разделяются с оригиналом.
func (c Celebration) Clone() Celebration {
	out := c
	out.Invitees = slices.Clone(c.Invitees)
	out.Contributors = slices.Clone(c.Contributors)
	if c.ThankYouMessage != nil {
		ty := *c.ThankYouMessage
		out.ThankYouMessage = &ty
	}

	return out
}

// TimePeriod — временное окно поиска.
type TimePeriod string

const (
	PeriodFuture TimePeriod = "future"
	PeriodPast   TimePeriod = "past"
)

// CelebrationQuery — параметры выборки для хранилища.
// Фильтр по команде уже развёрнут сервисом в множества CelebratorIn/CelebratorNotIn:
// хранилище ничего не знает о командах.
type CelebrationQuery struct {
	// CelebratorEmail — точное совпадение (без учёта регистра) e-mail празднующего.
	CelebratorEmail string
	// CelebratorName — точное совпадение с именем, фамилией или «имя фамилия» (без учёта регистра).
	CelebratorName string
	// CelebratorIn — если не nil, оставляем только этих празднующих (пустой срез -> пустой результат).
	CelebratorIn []string
	// CelebratorNotIn — исключаемые празднующие.
	CelebratorNotIn []string
	// Period + Now: future -> date > Now, past -> date <= Now.
	Period TimePeriod
	Now    time.Time
	// NotBefore/NotAfter — включительные границы (нулевое значение — без границы).
	NotBefore time.Time
	NotAfter  time.Time
	// Offset/Limit — позиция и размер страницы в отсортированном результате.
	Offset int64
	Limit  int64
}

// CelebrationPage — страница результатов поиска.
type CelebrationPage struct {
	Items []Celebration
	Total int64
}
