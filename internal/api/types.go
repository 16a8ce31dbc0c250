// api описывает проводной контракт celebrations-service: имена полей JSON
// совпадают с инструментами MCP бит в бит и одинаковы для MCP и HTTP.
//
// Курсоры действительны только для тех фильтров, с которыми были выданы:
// повторное использование с другими фильтрами даёт неопределённую страницу.
package api

// Person — человек в ответах.
// Контекстный флаг зависит от места: isInMyTeam у празднующих и подсказок,
// isCurrentUser у авторов комментариев и в результатах find_invitees.
type Person struct {
	RosterPersonID string `json:"rosterPersonId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	EmailAddress   string `json:"emailAddress"`
	AvatarURL      string `json:"avatarUrl"`
	JobTitle       string `json:"jobTitle"`
	IsInMyTeam     *bool  `json:"isInMyTeam,omitempty"`
	IsCurrentUser  *bool  `json:"isCurrentUser,omitempty"`
}

// ThankYouMessage — ответ празднующего.
type ThankYouMessage struct {
	Comment    string `json:"comment"`
	TotalLikes int32  `json:"totalLikes"`
}

// Celebration — празднование глазами вызывающего. Date — RFC 3339 с явным смещением.
type Celebration struct {
	CelebrationID        string           `json:"celebrationId"`
	MilestoneName        string           `json:"milestoneName"`
	Date                 string           `json:"date"`
	ImageURL             string           `json:"imageUrl"`
	TotalInvites         int32            `json:"totalInvites"`
	CanContribute        bool             `json:"canContribute"`
	HasContributed       bool             `json:"hasContributed"`
	HasCelebratorThanked bool             `json:"hasCelebratorThanked"`
	AllowPrivateComments bool             `json:"allowPrivateComments"`
	ThankYouMessage      *ThankYouMessage `json:"thankYouMessage,omitempty"`
	Celebrator           Person           `json:"celebrator"`
}

// Comment — комментарий с вложенными ответами.
type Comment struct {
	CommentID   string    `json:"commentId"`
	IsPrivate   bool      `json:"isPrivate"`
	TotalLikes  int32     `json:"totalLikes"`
	Comment     string    `json:"comment"`
	Contributor Person    `json:"contributor"`
	Replies     []Comment `json:"replies"`
}

// ---- search ----

// SearchIdentity — фильтр по празднующему.
type SearchIdentity struct {
	By         string `json:"by,omitempty"         jsonschema:"email or name" validate:"omitempty,oneof=email name"`
	Identifier string `json:"identifier,omitempty" jsonschema:"exact e-mail, first name, last name or full name of the celebrator" validate:"max=320"`
}

// SearchFilters — фильтры по команде и времени.
type SearchFilters struct {
	Team          string `json:"team,omitempty"          jsonschema:"my_team, other_teams or all (default)" validate:"omitempty,oneof=my_team other_teams all"`
	TimePeriod    string `json:"timePeriod,omitempty"    jsonschema:"future (default) or past" validate:"omitempty,oneof=future past"`
	NotBeforeDate string `json:"notBeforeDate,omitempty" jsonschema:"inclusive lower bound, YYYY-MM-DD or RFC 3339"`
	NotAfterDate  string `json:"notAfterDate,omitempty"  jsonschema:"inclusive upper bound, YYYY-MM-DD or RFC 3339"`
}

// Pagination — смещение и размер страницы поиска.
// Limit без значения — страница по умолчанию, явный 0 отклоняется.
type Pagination struct {
	Limit  *int64 `json:"limit,omitempty"  jsonschema:"page size, at least 1, defaults to 5" validate:"omitempty,gte=1"`
	Cursor int64  `json:"cursor,omitempty" jsonschema:"offset into the result set, 0 is the start" validate:"gte=0"`
}

// SearchQuery — запрос инструмента search.
type SearchQuery struct {
	Search     *SearchIdentity `json:"search,omitempty"`
	Filters    *SearchFilters  `json:"filters,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// SearchMetadata — total считается по отфильтрованному множеству,
// nextCursor = cursor + limit даже на последней странице.
type SearchMetadata struct {
	Total      int64 `json:"total"`
	NextCursor int64 `json:"nextCursor"`
}

// SearchResponse — ответ инструмента search.
type SearchResponse struct {
	Celebrations []Celebration  `json:"celebrations"`
	Metadata     SearchMetadata `json:"metadata"`
}

// ---- celebration_contributions ----

// ContributionsQuery — запрос ветки. Пустой курсор или nil UUID — начало.
type ContributionsQuery struct {
	CelebrationID string `json:"celebrationId"    jsonschema:"celebration id" validate:"required"`
	Cursor        string `json:"cursor,omitempty" jsonschema:"opaque cursor from the previous page"`
}

// ContributionsMetadata — totalComments считает только видимые корневые комментарии.
type ContributionsMetadata struct {
	TotalComments int64  `json:"totalComments"`
	NextCursor    string `json:"nextCursor"`
}

// ContributionsResponse — ответ инструмента celebration_contributions.
type ContributionsResponse struct {
	Celebration Celebration           `json:"celebration"`
	Comments    []Comment             `json:"comments"`
	Metadata    ContributionsMetadata `json:"metadata"`
}

// ---- comment ----

// CommentQuery — новый комментарий; commentId задаёт родителя для ответа.
type CommentQuery struct {
	CelebrationID string `json:"celebrationId"       jsonschema:"celebration id" validate:"required"`
	CommentID     string `json:"commentId,omitempty" jsonschema:"parent comment id for a reply"`
	Comment       string `json:"comment"             jsonschema:"comment text" validate:"required"`
	IsPrivate     bool   `json:"isPrivate,omitempty" jsonschema:"visible only to the celebrator and the author"`
}

// CommentResponse — ответ инструмента comment.
type CommentResponse struct {
	Celebration Celebration `json:"celebration"`
	Comment     Comment     `json:"comment"`
}

// ---- invite ----

// RosterInvitee — приглашение по roster-идентификатору.
type RosterInvitee struct {
	RosterPersonID string `json:"rosterPersonId" validate:"required"`
}

// EmailInvitee — приглашение внешнего участника.
type EmailInvitee struct {
	EmailAddress string `json:"emailAddress" validate:"required,max=320"`
	FirstName    string `json:"firstName"    validate:"required,max=100"`
	LastName     string `json:"lastName"     validate:"required,max=100"`
}

// InviteQuery — запрос инструмента invite.
type InviteQuery struct {
	CelebrationID    string          `json:"celebrationId"              jsonschema:"celebration id" validate:"required"`
	ByRosterPersonID []RosterInvitee `json:"byRosterPersonId,omitempty" jsonschema:"internal people to invite" validate:"dive"`
	ByEmailAddress   []EmailInvitee  `json:"byEmailAddress,omitempty"   jsonschema:"external people to invite" validate:"dive"`
}

// InvitationSummary — итог дедупликации.
type InvitationSummary struct {
	InvitesSent    int32 `json:"invitesSent"`
	AlreadyInvited int32 `json:"alreadyInvited"`
}

// InvitedContributor — добавленный этим вызовом приглашённый.
type InvitedContributor struct {
	RosterPersonID string `json:"rosterPersonId,omitempty"`
	EmailAddress   string `json:"emailAddress"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
}

// InviteResponse — ответ инструмента invite.
type InviteResponse struct {
	Celebration         Celebration          `json:"celebration"`
	InvitationSummary   InvitationSummary    `json:"invitationSummary"`
	InvitedContributors []InvitedContributor `json:"invitedContributors"`
	SuggestedInvitees   []Person             `json:"suggestedInvitees"`
}

// ---- find_invitees ----

// PeopleSearch — поиск людей по имени или e-mail.
type PeopleSearch struct {
	By    string `json:"by"    jsonschema:"name or email" validate:"required,oneof=name email"`
	Query string `json:"query" jsonschema:"substring to match" validate:"required,max=320"`
}

// FindInviteesQuery — запрос инструмента find_invitees.
type FindInviteesQuery struct {
	Search        PeopleSearch `json:"search"`
	CelebrationID string       `json:"celebrationId" jsonschema:"celebration id" validate:"required"`
}

// FindInviteesMetadata — totalResults считается до ограничения выдачи.
type FindInviteesMetadata struct {
	TotalResults int64 `json:"totalResults"`
}

// FindInviteesResponse — ответ инструмента find_invitees.
type FindInviteesResponse struct {
	People   []Person             `json:"people"`
	Metadata FindInviteesMetadata `json:"metadata"`
}
