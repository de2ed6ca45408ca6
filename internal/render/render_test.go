package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/ticketboard/internal/graph"
	"github.com/kazz187/ticketboard/internal/ticket"
)

func tickets() []ticket.Ticket {
	return []ticket.Ticket{
		{ID: 1, Title: "Auth", Type: ticket.TypeEpic, Status: ticket.StatusInProgress, Priority: ticket.PriorityHigh},
		{ID: 2, Title: "Login", Type: ticket.TypeTask, ParentID: ticket.IDPtr(1), Status: ticket.StatusOpen, Priority: ticket.PriorityMedium},
		{ID: 3, Title: "Legacy", Type: ticket.TypeTask, Status: "blocked", Priority: ticket.PriorityLow},
	}
}

func TestBoard(t *testing.T) {
	var b strings.Builder
	require.NoError(t, New(false).Board(&b, ticket.GroupByColumn(tickets())))

	want := `To Do (2)
  #2 [task/medium] Login (parent #1)
  #3 [task/low] Legacy {status "blocked"}

In Progress (1)
  #1 [epic/high] Auth

Review (0)

Done (0)
`
	assert.Equal(t, want, b.String())
	assert.Equal(t, want, BoardText(ticket.GroupByColumn(tickets())))
}

func TestGraph(t *testing.T) {
	var b strings.Builder
	require.NoError(t, New(false).Graph(&b, graph.Build(tickets())))

	want := `#1 epic Auth [in_progress]
  #2 task Login [open]
#3 task Legacy [blocked]
3 nodes, 1 edges
`
	assert.Equal(t, want, b.String())
}

func TestDiff(t *testing.T) {
	before := BoardText(ticket.GroupByColumn(tickets()))
	moved := tickets()
	moved[1].Status = ticket.StatusDone
	after := BoardText(ticket.GroupByColumn(moved))

	d, err := Diff(before, before)
	require.NoError(t, err)
	assert.Empty(t, d)

	d, err = Diff(before, after)
	require.NoError(t, err)
	assert.Contains(t, d, "--- before")
	assert.Contains(t, d, "+++ after")
	assert.Contains(t, d, "-To Do (2)")
	assert.Contains(t, d, "+Done (1)")
	assert.Contains(t, d, "+  #2 [task/medium] Login (parent #1)")

	var b strings.Builder
	require.NoError(t, New(false).DiffTo(&b, before, after))
	assert.True(t, strings.HasPrefix(b.String(), d))
}

func TestViolations(t *testing.T) {
	var b strings.Builder
	require.NoError(t, New(false).Violations(&b, nil))
	assert.Equal(t, "hierarchy ok\n", b.String())

	b.Reset()
	vs := []ticket.Violation{{Kind: ticket.ViolationDanglingParent, TicketID: 4, ParentID: 99}}
	require.NoError(t, New(false).Violations(&b, vs))
	assert.Equal(t, "#4: parent #99 does not exist\n", b.String())
}
