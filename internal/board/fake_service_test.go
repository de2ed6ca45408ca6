package board

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/kazz187/ticketboard/internal/eventbus"
	"github.com/kazz187/ticketboard/internal/ticket"
)

var errWriteRejected = errors.New("write rejected")

type statusWrite struct {
	TicketID int64
	Status   ticket.Status
}

// fakeService is an in-memory TicketService. Hooks run before the default
// behavior; a non-nil hook error is returned as is.
type fakeService struct {
	mu      sync.Mutex
	tickets map[int64]ticket.Ticket
	writes  []statusWrite
	fetches int

	patchHook func(ctx context.Context, id int64, status ticket.Status) error
	fetchHook func(ctx context.Context, projectID string) error
}

func newFakeService(ts ...ticket.Ticket) *fakeService {
	f := &fakeService{tickets: make(map[int64]ticket.Ticket)}
	for _, t := range ts {
		f.tickets[t.ID] = t
	}
	return f
}

// FetchTickets reads the stored tickets before running fetchHook, so a
// blocking hook delivers a response that may be stale by the time it returns.
func (f *fakeService) FetchTickets(ctx context.Context, projectID string) ([]ticket.Ticket, error) {
	f.mu.Lock()
	f.fetches++
	hook := f.fetchHook
	var out []ticket.Ticket
	for _, t := range f.tickets {
		if t.ProjectID == projectID {
			out = append(out, t.Clone())
		}
	}
	f.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if hook != nil {
		if err := hook(ctx, projectID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (f *fakeService) PatchTicketStatus(ctx context.Context, id int64, status ticket.Status) error {
	f.mu.Lock()
	f.writes = append(f.writes, statusWrite{TicketID: id, Status: status})
	hook := f.patchHook
	f.mu.Unlock()
	if hook != nil {
		if err := hook(ctx, id, status); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[id]
	if !ok {
		return ErrTicketNotFound
	}
	t.Status = status
	f.tickets[id] = t
	return nil
}

func (f *fakeService) Writes() []statusWrite {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]statusWrite(nil), f.writes...)
}

func (f *fakeService) Fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeService) Status(id int64) ticket.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tickets[id].Status
}

func sampleTickets() []ticket.Ticket {
	return []ticket.Ticket{
		{ID: 1, ProjectID: "p", Title: "Auth", Type: ticket.TypeEpic, Status: ticket.StatusInProgress, Priority: ticket.PriorityHigh},
		{ID: 7, ProjectID: "p", Title: "Session store", Type: ticket.TypeTask, ParentID: ticket.IDPtr(1), Status: ticket.StatusReview, Priority: ticket.PriorityMedium},
		{ID: 42, ProjectID: "p", Title: "Login page", Type: ticket.TypeTask, ParentID: ticket.IDPtr(1), Status: ticket.StatusOpen, Priority: ticket.PriorityMedium},
		{ID: 100, ProjectID: "q", Title: "Other project", Type: ticket.TypeEpic, Status: ticket.StatusOpen, Priority: ticket.PriorityLow},
	}
}

// collect drains ch until an event of type want arrives or timeout passes.
func collect(ch <-chan eventbus.Event, want eventbus.EventType, timeout time.Duration) (eventbus.Event, bool) {
	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return eventbus.Event{}, false
			}
			if ev.Type == want {
				return ev, true
			}
		case <-deadline:
			return eventbus.Event{}, false
		}
	}
}
