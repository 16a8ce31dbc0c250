package api

import (
	"time"

	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/service"
)

// dateLayout — RFC 3339 с явным смещением (UTC выводится как +00:00).
const dateLayout = "2006-01-02T15:04:05.000-07:00"

// defaultSearchLimit — размер страницы, если pagination.limit не передан.
const defaultSearchLimit = 5

func flag(v bool) *bool {
	return &v
}

// FormatDate приводит дату к проводному формату.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func person(p models.Person) Person {
	return Person{
		RosterPersonID: p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		EmailAddress:   p.Email,
		AvatarURL:      p.AvatarURL,
		JobTitle:       p.JobTitle,
	}
}

func teamPerson(p models.Person, inMyTeam bool) Person {
	out := person(p)
	out.IsInMyTeam = flag(inMyTeam)
	return out
}

func callerPerson(p models.Person, caller models.Caller) Person {
	out := person(p)
	out.IsCurrentUser = flag(caller.Is(p.ID))
	return out
}

func celebrationFromView(v service.CelebrationView) Celebration {
	out := Celebration{
		CelebrationID:        v.ID,
		MilestoneName:        v.MilestoneName,
		Date:                 FormatDate(v.Date),
		ImageURL:             v.ImageURL,
		TotalInvites:         v.TotalInvites,
		CanContribute:        v.CanContribute,
		HasContributed:       v.HasContributed,
		HasCelebratorThanked: v.HasCelebratorThanked,
		AllowPrivateComments: v.AllowPrivateComments,
		Celebrator:           teamPerson(v.Celebrator, v.CelebratorInMyTeam),
	}

	if v.ThankYouMessage != nil {
		out.ThankYouMessage = &ThankYouMessage{
			Comment:    v.ThankYouMessage.Comment,
			TotalLikes: v.ThankYouMessage.TotalLikes,
		}
	}

	return out
}

func commentFromNode(n models.ThreadNode, caller models.Caller) Comment {
	out := Comment{
		CommentID:   n.Comment.ID,
		IsPrivate:   n.Comment.IsPrivate,
		TotalLikes:  n.Comment.TotalLikes,
		Comment:     n.Comment.Text,
		Contributor: callerPerson(n.Comment.Contributor, caller),
		Replies:     make([]Comment, 0, len(n.Replies)),
	}

	for _, r := range n.Replies {
		out.Replies = append(out.Replies, commentFromNode(r, caller))
	}

	return out
}

// SearchInput переводит проводной запрос в параметры сервиса.
func (q SearchQuery) SearchInput() service.SearchInput {
	in := service.SearchInput{Limit: defaultSearchLimit}

	if q.Search != nil {
		in.By = q.Search.By
		in.Identifier = q.Search.Identifier
	}

	if q.Filters != nil {
		in.Team = q.Filters.Team
		in.TimePeriod = q.Filters.TimePeriod
		in.NotBefore = q.Filters.NotBeforeDate
		in.NotAfter = q.Filters.NotAfterDate
	}

	if q.Pagination != nil {
		if q.Pagination.Limit != nil {
			in.Limit = *q.Pagination.Limit
		}
		in.Cursor = q.Pagination.Cursor
	}

	return in
}

// SearchFromResult собирает ответ search.
func SearchFromResult(res *service.SearchResult) SearchResponse {
	out := SearchResponse{
		Celebrations: make([]Celebration, 0, len(res.Celebrations)),
		Metadata:     SearchMetadata{Total: res.Total, NextCursor: res.NextCursor},
	}

	for _, v := range res.Celebrations {
		out.Celebrations = append(out.Celebrations, celebrationFromView(v))
	}

	return out
}

// ContributionsFromResult собирает ответ celebration_contributions.
func ContributionsFromResult(res *service.ThreadResult, caller models.Caller) ContributionsResponse {
	out := ContributionsResponse{
		Celebration: celebrationFromView(res.Celebration),
		Comments:    make([]Comment, 0, len(res.Comments)),
		Metadata: ContributionsMetadata{
			TotalComments: res.TotalComments,
			NextCursor:    res.NextCursor,
		},
	}

	for _, n := range res.Comments {
		out.Comments = append(out.Comments, commentFromNode(n, caller))
	}

	return out
}

// CommentFromResult собирает ответ comment.
func CommentFromResult(res *service.PostCommentResult, caller models.Caller) CommentResponse {
	return CommentResponse{
		Celebration: celebrationFromView(res.Celebration),
		Comment:     commentFromNode(res.Comment, caller),
	}
}

// InviteInput переводит проводной запрос в параметры сервиса.
func (q InviteQuery) InviteInput() service.InviteInput {
	in := service.InviteInput{
		CelebrationID: q.CelebrationID,
		PersonIDs:     make([]string, 0, len(q.ByRosterPersonID)),
		Emails:        make([]service.EmailInvite, 0, len(q.ByEmailAddress)),
	}

	for _, r := range q.ByRosterPersonID {
		in.PersonIDs = append(in.PersonIDs, r.RosterPersonID)
	}

	for _, e := range q.ByEmailAddress {
		in.Emails = append(in.Emails, service.EmailInvite{
			Email:     e.EmailAddress,
			FirstName: e.FirstName,
			LastName:  e.LastName,
		})
	}

	return in
}

// InviteFromResult собирает ответ invite.
// Подсказки берутся из команды празднующего, поэтому их isInMyTeam совпадает с празднующим.
func InviteFromResult(res *service.InviteResult) InviteResponse {
	out := InviteResponse{
		Celebration: celebrationFromView(res.Celebration),
		InvitationSummary: InvitationSummary{
			InvitesSent:    res.InvitesSent,
			AlreadyInvited: res.AlreadyInvited,
		},
		InvitedContributors: make([]InvitedContributor, 0, len(res.Invited)),
		SuggestedInvitees:   make([]Person, 0, len(res.Suggested)),
	}

	for _, inv := range res.Invited {
		out.InvitedContributors = append(out.InvitedContributors, InvitedContributor{
			RosterPersonID: inv.PersonID,
			EmailAddress:   inv.Email,
			FirstName:      inv.FirstName,
			LastName:       inv.LastName,
		})
	}

	for _, p := range res.Suggested {
		out.SuggestedInvitees = append(out.SuggestedInvitees, teamPerson(p, res.Celebration.CelebratorInMyTeam))
	}

	return out
}

// FindInviteesFromResult собирает ответ find_invitees.
func FindInviteesFromResult(res *service.FindInviteesResult, caller models.Caller) FindInviteesResponse {
	out := FindInviteesResponse{
		People:   make([]Person, 0, len(res.People)),
		Metadata: FindInviteesMetadata{TotalResults: res.TotalResults},
	}

	for _, p := range res.People {
		out.People = append(out.People, callerPerson(p, caller))
	}

	return out
}
