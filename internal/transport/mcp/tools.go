package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pribylovaa/celebrations-service/internal/api"
	"github.com/pribylovaa/celebrations-service/internal/models"
)

// Имена инструментов — часть проводного контракта.
const (
	ToolSearch        = "search"
	ToolContributions = "celebration_contributions"
	ToolComment       = "comment"
	ToolInvite        = "invite"
	ToolFindInvitees  = "find_invitees"
)

// Аргументы инструментов: единственное поле query.
type (
	SearchArgs struct {
		Query api.SearchQuery `json:"query" jsonschema:"search, filters and pagination parameters"`
	}
	ContributionsArgs struct {
		Query api.ContributionsQuery `json:"query" jsonschema:"celebration id and thread cursor"`
	}
	CommentArgs struct {
		Query api.CommentQuery `json:"query" jsonschema:"new comment or reply"`
	}
	InviteArgs struct {
		Query api.InviteQuery `json:"query" jsonschema:"people to invite by roster id or e-mail"`
	}
	FindInviteesArgs struct {
		Query api.FindInviteesQuery `json:"query" jsonschema:"people search for a celebration"`
	}
)

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: ToolSearch,
		Description: "Searches for upcoming or past service anniversary celebrations by celebrator " +
			"(e-mail or name), team relation (my_team, other_teams, all), time period (future, past) " +
			"with optional inclusive date bounds. Pagination uses an integer offset cursor; " +
			"metadata.nextCursor is always cursor+limit, stop when it reaches metadata.total.",
	}, handle(s, ToolSearch, func(ctx context.Context, c models.Caller, in SearchArgs) (any, error) {
		return s.api.Search(ctx, c, in.Query)
	}))

	mcp.AddTool(s.server, &mcp.Tool{
		Name: ToolContributions,
		Description: "Retrieves comments and replies contributed to a celebration, oldest first. " +
			"Top-level comments are paginated with an opaque cursor, replies are inlined. " +
			"Private comments are only visible to the celebrator and their author.",
	}, handle(s, ToolContributions, func(ctx context.Context, c models.Caller, in ContributionsArgs) (any, error) {
		return s.api.Contributions(ctx, c, in.Query)
	}))

	mcp.AddTool(s.server, &mcp.Tool{
		Name: ToolComment,
		Description: "Adds a comment to a celebration, or a reply when commentId is set. " +
			"Replies to replies are rejected. Private comments require allowPrivateComments.",
	}, handle(s, ToolComment, func(ctx context.Context, c models.Caller, in CommentArgs) (any, error) {
		return s.api.Comment(ctx, c, in.Query)
	}))

	mcp.AddTool(s.server, &mcp.Tool{
		Name: ToolInvite,
		Description: "Invites internal people (by roster id) and external people (by e-mail with first " +
			"and last name) to a celebration. Already invited people are counted, not re-invited. " +
			"The call is all-or-nothing and returns suggested invitees from the celebrator's team.",
	}, handle(s, ToolInvite, func(ctx context.Context, c models.Caller, in InviteArgs) (any, error) {
		return s.api.Invite(ctx, c, in.Query)
	}))

	mcp.AddTool(s.server, &mcp.Tool{
		Name: ToolFindInvitees,
		Description: "Searches internal people to invite to a celebration by name or e-mail substring. " +
			"metadata.totalResults counts all matches before the result cap.",
	}, handle(s, ToolFindInvitees, func(ctx context.Context, c models.Caller, in FindInviteesArgs) (any, error) {
		return s.api.FindInvitees(ctx, c, in.Query)
	}))
}
