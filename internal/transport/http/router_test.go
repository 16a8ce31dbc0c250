package http

// Тесты роутера: настоящее ядро поверх in-memory хранилища за httptest.Server.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pribylovaa/celebrations-service/internal/api"
	"github.com/pribylovaa/celebrations-service/internal/config"
	"github.com/pribylovaa/celebrations-service/internal/directory/roster"
	"github.com/pribylovaa/celebrations-service/internal/metrics"
	"github.com/pribylovaa/celebrations-service/internal/models"
	"github.com/pribylovaa/celebrations-service/internal/service"
	"github.com/pribylovaa/celebrations-service/internal/storage/memory"
	apierrors "github.com/pribylovaa/celebrations-service/internal/transport/http/errors"
	"github.com/pribylovaa/celebrations-service/internal/transport/http/handlers"
	mcptransport "github.com/pribylovaa/celebrations-service/internal/transport/mcp"
	"github.com/stretchr/testify/require"
)

var (
	ada  = models.Person{ID: "p-ada", FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.io", TeamID: "engines"}
	kate = models.Person{ID: "p-kate", FirstName: "Katherine", LastName: "Johnson", Email: "kate@x.io", TeamID: "engines"}
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type fixture struct {
	srv     *httptest.Server
	ready   *atomic.Bool
	pingErr atomic.Value
}

// newFixture — роутер с JSON API на /api/v1, MCP на /mcp, health и metrics.
// Вызывающий по умолчанию — ada (празднующая в "c1").
func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir, err := roster.New([]models.Person{ada, kate})
	require.NoError(t, err)

	store := memory.New()
	_, err = store.CreateCelebration(context.Background(), models.Celebration{
		ID:            "c1",
		MilestoneName: "10 years",
		Date:          time.Now().Add(48 * time.Hour),
		Celebrator:    ada,
		CanContribute: true,
	})
	require.NoError(t, err)

	cfg := config.Config{Limits: config.LimitsConfig{
		SearchMax: 100, ThreadPageSize: 10, MaxDepth: 1, CommentMaxLen: 100,
		Suggestions: 5, FindResults: 10, ConflictRetries: 3,
	}}

	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	a := api.New(service.New(store, dir, cfg))
	mcpSrv := mcptransport.NewServer(a, mcptransport.Options{Logger: lg, Metrics: m, DefaultCallerID: ada.ID})

	f := &fixture{ready: &atomic.Bool{}}
	f.ready.Store(true)

	router := NewRouter(a, Options{
		Logger:          lg,
		Timeout:         time.Second,
		BasePath:        "/api/v1",
		DefaultCallerID: ada.ID,
		MCP:             mcpSrv.Handler(),
		MCPPath:         "/mcp",
		Metrics:         m,
		Health: &handlers.Health{
			Ready: f.ready,
			Checks: map[string]handlers.Pinger{
				"storage": pingerFunc(func(context.Context) error {
					if err, _ := f.pingErr.Load().(error); err != nil {
						return err
					}
					return nil
				}),
			},
		},
	})

	f.srv = httptest.NewServer(router)
	t.Cleanup(f.srv.Close)

	return f
}

func (f *fixture) post(t *testing.T, path, callerID, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, f.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if callerID != "" {
		req.Header.Set(api.HeaderCaller, callerID)
	}

	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func (f *fixture) get(t *testing.T, path string) (int, string) {
	t.Helper()

	resp, err := f.srv.Client().Get(f.srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(b)
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRouter_Health(t *testing.T) {
	f := newFixture(t)

	code, body := f.get(t, "/livez")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body)

	code, _ = f.get(t, "/healthz")
	require.Equal(t, http.StatusOK, code)

	f.pingErr.Store(errors.New("mongo down"))
	code, body = f.get(t, "/healthz")
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Contains(t, body, "storage unavailable")

	f.ready.Store(false)
	code, body = f.get(t, "/healthz")
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Contains(t, body, "not ready")
}

func TestRouter_SearchAndMetrics(t *testing.T) {
	f := newFixture(t)

	resp := f.post(t, "/api/v1/search", "", `{"filters":{"team":"my_team"},"pagination":{"limit":2}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.Len(t, resp.Header.Get("X-Request-Id"), 32)

	out := decodeBody[api.SearchResponse](t, resp)
	require.EqualValues(t, 1, out.Metadata.Total)
	require.EqualValues(t, 2, out.Metadata.NextCursor)
	require.Equal(t, "c1", out.Celebrations[0].CelebrationID)
	require.True(t, *out.Celebrations[0].Celebrator.IsInMyTeam)

	code, body := f.get(t, "/metrics")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, `celebrations_http_requests_total{method="POST",route="/api/v1/search",status="200"} 1`)
}

func TestRouter_CommentThenContributions(t *testing.T) {
	f := newFixture(t)

	resp := f.post(t, "/api/v1/comment", kate.ID, `{"celebrationId":"c1","comment":"Congrats, Ada!","isPrivate":false}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	posted := decodeBody[api.CommentResponse](t, resp)
	require.Equal(t, kate.ID, posted.Comment.Contributor.RosterPersonID)
	require.True(t, *posted.Comment.Contributor.IsCurrentUser)

	resp = f.post(t, "/api/v1/celebration_contributions", "", `{"celebrationId":"c1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	thread := decodeBody[api.ContributionsResponse](t, resp)
	require.EqualValues(t, 1, thread.Metadata.TotalComments)
	require.Equal(t, posted.Comment.CommentID, thread.Comments[0].CommentID)
	require.False(t, *thread.Comments[0].Contributor.IsCurrentUser, "читает ada, автор — kate")
}

func TestRouter_Errors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "unknown_field",
			path:       "/api/v1/search",
			body:       `{"filter":{}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_argument",
			wantMsg:    "malformed JSON body",
		},
		{
			name:       "trailing_data",
			path:       "/api/v1/search",
			body:       `{} {}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_argument",
			wantMsg:    "unexpected data after object",
		},
		{
			name:       "empty_body_missing_required",
			path:       "/api/v1/celebration_contributions",
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_argument",
			wantMsg:    "celebrationId is a required field",
		},
		{
			name:       "unknown_celebration",
			path:       "/api/v1/invite",
			body:       `{"celebrationId":"nope","byRosterPersonId":[{"rosterPersonId":"p-kate"}]}`,
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
			wantMsg:    `celebration "nope" not found`,
		},
		{
			name:       "find_bad_by",
			path:       "/api/v1/find_invitees",
			body:       `{"celebrationId":"c1","search":{"by":"phone","query":"x"}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_argument",
			wantMsg:    "by must be one of [name email]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.post(t, tt.path, "", tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			env := decodeBody[apierrors.ErrorResponse](t, resp)
			require.Equal(t, tt.wantCode, env.Error.Code)
			require.Contains(t, env.Error.Message, tt.wantMsg)
			require.Equal(t, resp.Header.Get("X-Request-Id"), env.Error.RequestID)
		})
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newFixture(t)

	resp := f.post(t, "/api/v1/thank_you", "", `{}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// callerTransport добавляет заголовок вызывающего ко всем запросам MCP-клиента.
type callerTransport struct {
	id string
}

func (c callerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set(api.HeaderCaller, c.id)
	return http.DefaultTransport.RoundTrip(r)
}

func TestRouter_MCPStreamableUsesCallerHeader(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:   f.srv.URL + "/mcp",
		HTTPClient: &http.Client{Transport: callerTransport{id: kate.ID}},
	}, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      mcptransport.ToolComment,
		Arguments: map[string]any{"query": map[string]any{"celebrationId": "c1", "comment": "From MCP"}},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var out api.CommentResponse
	require.NoError(t, json.NewDecoder(bytes.NewBufferString(tc.Text)).Decode(&out))
	require.Equal(t, kate.ID, out.Comment.Contributor.RosterPersonID)
}
