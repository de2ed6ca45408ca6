package eventbus

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type EventType string

const (
	TicketsReplaced EventType = "tickets.replaced"
	TicketPatched   EventType = "ticket.patched"
	TicketsRestored EventType = "tickets.restored"
	CommitSucceeded EventType = "commit.succeeded"
	CommitFailed    EventType = "commit.failed"
	LoadCompleted   EventType = "load.completed"
	LoadFailed      EventType = "load.failed"
)

type Event struct {
	ID        string
	Type      EventType
	ProjectID string
	// TicketID is zero for events that concern the whole set.
	TicketID  int64
	Metadata  map[string]string
	CreatedAt time.Time
}

type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
}

func New() *Bus {
	return &Bus{
		subscribers: make(map[string]chan Event),
	}
}

func (b *Bus) Subscribe(bufSize int) (string, <-chan Event) {
	id := ulid.Make().String()
	ch := make(chan Event, bufSize)
	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()
	return id, ch
}

func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

// Publish never blocks: a subscriber whose buffer is full misses the event.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (b *Bus) PublishNew(eventType EventType, projectID string, ticketID int64, metadata map[string]string) {
	b.Publish(Event{
		ID:        ulid.Make().String(),
		Type:      eventType,
		ProjectID: projectID,
		TicketID:  ticketID,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	})
}

// Close unsubscribes everyone.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
