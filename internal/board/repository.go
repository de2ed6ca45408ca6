package board

import (
	"maps"
	"sort"
	"strconv"
	"sync"

	"github.com/kazz187/ticketboard/internal/eventbus"
	"github.com/kazz187/ticketboard/internal/ticket"
)

// Patch lists the mutable fields of a ticket. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Status      *ticket.Status
	Priority    *ticket.Priority
}

func StatusPatch(s ticket.Status) Patch {
	return Patch{Status: &s}
}

func (p Patch) apply(t *ticket.Ticket) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
}

// Snapshot is an immutable copy of the repository contents.
type Snapshot struct {
	tickets map[int64]ticket.Ticket
	version uint64
}

func (s Snapshot) Ticket(id int64) (ticket.Ticket, bool) {
	t, ok := s.tickets[id]
	if !ok {
		return ticket.Ticket{}, false
	}
	return t.Clone(), true
}

func (s Snapshot) Len() int {
	return len(s.tickets)
}

func (s Snapshot) Version() uint64 {
	return s.version
}

// WithStatus returns a copy of s in which ticket id has status st. It is a
// no-op copy when id is not in s.
func (s Snapshot) WithStatus(id int64, st ticket.Status) Snapshot {
	t, ok := s.tickets[id]
	if !ok {
		return s
	}
	out := Snapshot{tickets: maps.Clone(s.tickets), version: s.version}
	t.Status = st
	out.tickets[id] = t
	return out
}

// Repository is the client side copy of one project's tickets. Every
// mutation bumps Version and publishes an event on the bus.
type Repository struct {
	bus *eventbus.Bus

	mu        sync.RWMutex
	projectID string
	tickets   map[int64]ticket.Ticket
	version   uint64
}

func NewRepository(bus *eventbus.Bus) *Repository {
	return &Repository{
		bus:     bus,
		tickets: make(map[int64]ticket.Ticket),
	}
}

func (r *Repository) ProjectID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.projectID
}

// Get returns copies of all tickets ordered by ID.
func (r *Repository) Get() []ticket.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ticket.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Repository) Ticket(id int64) (ticket.Ticket, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	if !ok {
		return ticket.Ticket{}, false
	}
	return t.Clone(), true
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tickets)
}

func (r *Repository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *Repository) Columns() []ticket.Column {
	return ticket.GroupByColumn(r.Get())
}

func (r *Repository) publish(typ eventbus.EventType, projectID string, ticketID int64, version uint64, metadata map[string]string) {
	if r.bus == nil {
		return
	}
	if metadata == nil {
		metadata = make(map[string]string, 1)
	}
	metadata["version"] = strconv.FormatUint(version, 10)
	r.bus.PublishNew(typ, projectID, ticketID, metadata)
}

// Reset empties the repository and scopes it to projectID.
func (r *Repository) Reset(projectID string) {
	r.mu.Lock()
	r.projectID = projectID
	r.tickets = make(map[int64]ticket.Ticket)
	r.version++
	v := r.version
	r.mu.Unlock()
	r.publish(eventbus.TicketsReplaced, projectID, 0, v, map[string]string{"count": "0"})
}

func (r *Repository) ReplaceAll(tickets []ticket.Ticket) {
	next := make(map[int64]ticket.Ticket, len(tickets))
	for _, t := range tickets {
		next[t.ID] = t.Clone()
	}
	r.mu.Lock()
	r.tickets = next
	r.version++
	v, pid := r.version, r.projectID
	r.mu.Unlock()
	r.publish(eventbus.TicketsReplaced, pid, 0, v, map[string]string{"count": strconv.Itoa(len(next))})
}

// ApplyPatch mutates a single ticket and reports whether it exists.
func (r *Repository) ApplyPatch(id int64, p Patch) bool {
	r.mu.Lock()
	t, ok := r.tickets[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	p.apply(&t)
	r.tickets[id] = t
	r.version++
	v, pid := r.version, r.projectID
	r.mu.Unlock()

	var md map[string]string
	if p.Status != nil {
		md = map[string]string{"status": string(*p.Status)}
	}
	r.publish(eventbus.TicketPatched, pid, id, v, md)
	return true
}

func (r *Repository) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot{tickets: maps.Clone(r.tickets), version: r.version}
}

func (r *Repository) Restore(s Snapshot) {
	r.mu.Lock()
	r.tickets = maps.Clone(s.tickets)
	if r.tickets == nil {
		r.tickets = make(map[int64]ticket.Ticket)
	}
	r.version++
	v, pid := r.version, r.projectID
	r.mu.Unlock()
	r.publish(eventbus.TicketsRestored, pid, 0, v, nil)
}

// RestoreTicket puts back the snapshot entry of a single ticket. A ticket
// that has disappeared since the snapshot is not resurrected.
func (r *Repository) RestoreTicket(s Snapshot, id int64) bool {
	prev, ok := s.tickets[id]
	if !ok {
		return false
	}
	r.mu.Lock()
	if _, ok := r.tickets[id]; !ok {
		r.mu.Unlock()
		return false
	}
	r.tickets[id] = prev.Clone()
	r.version++
	v, pid := r.version, r.projectID
	r.mu.Unlock()
	r.publish(eventbus.TicketsRestored, pid, id, v, map[string]string{"status": string(prev.Status)})
	return true
}
