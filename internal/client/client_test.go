package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "github.com/kazz187/ticketboard/internal"
	"github.com/kazz187/ticketboard/internal/board"
	"github.com/kazz187/ticketboard/internal/graph"
	"github.com/kazz187/ticketboard/internal/ticket"
	"github.com/kazz187/ticketboard/internal/ticket/repositoryimpl"
	"github.com/kazz187/ticketboard/pkg/cerr"
	"github.com/kazz187/ticketboard/pkg/storage"
)

const testAPIKey = "secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := repositoryimpl.NewYAMLRepository(s)
	srv := server.NewServer("", testAPIKey, ticket.NewService(repo), graph.NewService(repo))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func seed(t *testing.T, c *TicketClient) (epic, task ticket.Ticket) {
	t.Helper()
	ctx := context.Background()
	epic, err := c.CreateTicket(ctx, CreateTicketParams{ProjectID: "p", Title: "Auth", Type: ticket.TypeEpic})
	require.NoError(t, err)
	task, err = c.CreateTicket(ctx, CreateTicketParams{ProjectID: "p", Title: "Login page", ParentID: ticket.IDPtr(epic.ID)})
	require.NoError(t, err)
	return epic, task
}

func TestTicketClient_RejectsMissingAPIKey(t *testing.T) {
	ts := newTestServer(t)

	_, err := NewTicketClient(ts.URL).FetchTickets(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, cerr.IsCode(err, cerr.Unauthenticated), "got %v", err)

	_, err = NewTicketClient(ts.URL, WithAPIKey("wrong")).FetchTickets(context.Background(), "p")
	assert.True(t, cerr.IsCode(err, cerr.Unauthenticated), "got %v", err)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTicketClient_CRUD(t *testing.T) {
	ts := newTestServer(t)
	c := NewTicketClient(ts.URL, WithAPIKey(testAPIKey))
	ctx := context.Background()
	epic, task := seed(t, c)

	assert.Equal(t, ticket.TypeTask, task.Type)
	assert.Equal(t, ticket.PriorityMedium, task.Priority)
	assert.Equal(t, ticket.StatusOpen, task.Status)
	require.NotNil(t, task.ParentID)
	assert.Equal(t, epic.ID, *task.ParentID)

	require.NoError(t, c.PatchTicketStatus(ctx, task.ID, ticket.StatusReview))
	got, err := c.GetTicket(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusReview, got.Status)

	list, err := c.FetchTickets(ctx, "p")
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, c.DeleteTicket(ctx, task.ID))
	_, err = c.GetTicket(ctx, task.ID)
	assert.True(t, cerr.IsCode(err, cerr.NotFound), "got %v", err)
}

func TestTicketClient_ViolationsRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	c := NewTicketClient(ts.URL, WithAPIKey(testAPIKey))
	epic, _ := seed(t, c)

	_, err := c.CreateTicket(context.Background(), CreateTicketParams{
		ProjectID: "p", Title: "Nested epic", Type: ticket.TypeEpic, ParentID: ticket.IDPtr(epic.ID),
	})
	require.Error(t, err)
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))
	vs := cerr.Violations(err)
	require.Len(t, vs, 1)
	assert.Equal(t, "hierarchy", vs[0].GetRuleId())

	err = c.PatchTicketStatus(context.Background(), epic.ID, "blocked")
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))
}

func TestTicketClient_Graph(t *testing.T) {
	ts := newTestServer(t)
	c := NewTicketClient(ts.URL, WithAPIKey(testAPIKey))
	epic, task := seed(t, c)

	g, err := c.FetchGraph(context.Background(), "p")
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
	assert.Equal(t, []graph.Edge{{Source: epic.ID, Target: task.ID, Type: graph.EdgeHierarchy}}, g.Edges)
}

func TestBoardOverConnect(t *testing.T) {
	ts := newTestServer(t)
	c := NewTicketClient(ts.URL, WithAPIKey(testAPIKey))
	_, task := seed(t, c)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	b := board.New(c, board.WithGraphSource(c))
	defer b.Close()
	require.NoError(t, b.Open(ctx, "p"))

	d := b.Drag()
	require.NoError(t, d.Start(task.ID))
	require.NoError(t, d.Hover(board.ColumnTarget(ticket.StatusInProgress)))
	m, err := d.Drop(ctx, board.ColumnTarget(ticket.StatusInProgress))
	require.NoError(t, err)
	require.NotNil(t, m)
	require.NoError(t, m.Wait(ctx))

	got, err := c.GetTicket(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusInProgress, got.Status)

	remote, err := b.RemoteGraph(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.Graph(), remote)
}

func TestREST(t *testing.T) {
	ts := newTestServer(t)
	c := NewTicketClient(ts.URL, WithAPIKey(testAPIKey))
	_, task := seed(t, c)

	do := func(method, path, body string) *http.Response {
		req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+testAPIKey)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp := do(http.MethodPatch, "/api/tickets/"+strconv.FormatInt(task.ID, 10), `{"status":"done"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "done", updated["status"])

	resp = do(http.MethodPost, "/api/projects/p/tickets", `{"title":"","type":"story"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Code       string `json:"code"`
		Violations []struct {
			Field  string `json:"field"`
			RuleID string `json:"rule_id"`
		} `json:"violations"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "invalid_argument", body.Code)
	require.Len(t, body.Violations, 2)
	assert.Equal(t, "title", body.Violations[0].Field)
	assert.Equal(t, "type", body.Violations[1].Field)

	resp = do(http.MethodGet, "/api/projects/p/graph", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(http.MethodDelete, "/api/tickets/"+strconv.FormatInt(task.ID, 10), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
