package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/ticketboard/internal/eventbus"
	"github.com/kazz187/ticketboard/internal/ticket"
)

func TestRepository_ReplaceAllAndGet(t *testing.T) {
	repo := NewRepository(nil)
	repo.Reset("p")
	assert.Equal(t, "p", repo.ProjectID())
	assert.Zero(t, repo.Len())

	ts := sampleTickets()[:3]
	repo.ReplaceAll([]ticket.Ticket{ts[2], ts[0], ts[1]})

	got := repo.Get()
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 7, 42}, []int64{got[0].ID, got[1].ID, got[2].ID})

	// Callers get copies.
	*got[1].ParentID = 99
	again, ok := repo.Ticket(7)
	require.True(t, ok)
	assert.Equal(t, int64(1), *again.ParentID)

	cols := repo.Columns()
	require.Len(t, cols, len(ticket.Columns))
	assert.Equal(t, ticket.StatusOpen, cols[0].Status)
	require.Len(t, cols[0].Tickets, 1)
	assert.Equal(t, int64(42), cols[0].Tickets[0].ID)
}

func TestRepository_ApplyPatch(t *testing.T) {
	repo := NewRepository(nil)
	repo.ReplaceAll(sampleTickets()[:3])
	v := repo.Version()

	title := "Login form"
	assert.True(t, repo.ApplyPatch(42, Patch{Title: &title, Status: ptr(ticket.StatusDone)}))
	got, _ := repo.Ticket(42)
	assert.Equal(t, "Login form", got.Title)
	assert.Equal(t, ticket.StatusDone, got.Status)
	assert.Equal(t, ticket.PriorityMedium, got.Priority)
	assert.Equal(t, v+1, repo.Version())

	assert.False(t, repo.ApplyPatch(404, StatusPatch(ticket.StatusDone)))
	assert.Equal(t, v+1, repo.Version())
}

func TestRepository_SnapshotRestore(t *testing.T) {
	repo := NewRepository(nil)
	repo.ReplaceAll(sampleTickets()[:3])
	snap := repo.Snapshot()

	repo.ApplyPatch(42, StatusPatch(ticket.StatusDone))
	repo.ApplyPatch(7, StatusPatch(ticket.StatusDone))

	st, ok := snap.Ticket(42)
	require.True(t, ok)
	assert.Equal(t, ticket.StatusOpen, st.Status)
	assert.Equal(t, 3, snap.Len())

	assert.True(t, repo.RestoreTicket(snap, 42))
	got, _ := repo.Ticket(42)
	assert.Equal(t, ticket.StatusOpen, got.Status)
	got, _ = repo.Ticket(7)
	assert.Equal(t, ticket.StatusDone, got.Status)

	repo.Restore(snap)
	got, _ = repo.Ticket(7)
	assert.Equal(t, ticket.StatusReview, got.Status)

	moved := snap.WithStatus(42, ticket.StatusReview)
	st, _ = moved.Ticket(42)
	assert.Equal(t, ticket.StatusReview, st.Status)
	st, _ = snap.Ticket(42)
	assert.Equal(t, ticket.StatusOpen, st.Status)
}

func TestRepository_RestoreTicketDoesNotResurrect(t *testing.T) {
	repo := NewRepository(nil)
	repo.ReplaceAll(sampleTickets()[:3])
	snap := repo.Snapshot()

	repo.ReplaceAll(sampleTickets()[:2])
	assert.False(t, repo.RestoreTicket(snap, 42))
	_, ok := repo.Ticket(42)
	assert.False(t, ok)
	assert.False(t, repo.RestoreTicket(snap, 404))
}

func TestRepository_PublishesVersionedEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	_, ch := bus.Subscribe(16)

	repo := NewRepository(bus)
	repo.Reset("p")
	repo.ReplaceAll(sampleTickets()[:3])
	repo.ApplyPatch(42, StatusPatch(ticket.StatusDone))

	ev, ok := collect(ch, eventbus.TicketPatched, time.Second)
	require.True(t, ok)
	assert.Equal(t, "p", ev.ProjectID)
	assert.Equal(t, int64(42), ev.TicketID)
	assert.Equal(t, "done", ev.Metadata["status"])
	assert.Equal(t, "3", ev.Metadata["version"])
}

func ptr[T any](v T) *T {
	return &v
}
