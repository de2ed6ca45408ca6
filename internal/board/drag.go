package board

import (
	"context"
	"fmt"
	"sync"

	"github.com/kazz187/ticketboard/internal/ticket"
)

type dropTargetKind int

const (
	targetNone dropTargetKind = iota
	targetColumn
	targetCard
)

// DropTarget is what the pointer is over: a column, another card, or nothing
// (the zero value).
type DropTarget struct {
	kind     dropTargetKind
	status   ticket.Status
	ticketID int64
}

func ColumnTarget(s ticket.Status) DropTarget {
	return DropTarget{kind: targetColumn, status: s}
}

func CardTarget(id int64) DropTarget {
	return DropTarget{kind: targetCard, ticketID: id}
}

// NoTarget is a drop outside any column or card.
var NoTarget = DropTarget{}

func (t DropTarget) IsZero() bool {
	return t.kind == targetNone
}

func (t DropTarget) Column() (ticket.Status, bool) {
	return t.status, t.kind == targetColumn
}

func (t DropTarget) Card() (int64, bool) {
	return t.ticketID, t.kind == targetCard
}

func (t DropTarget) String() string {
	switch t.kind {
	case targetColumn:
		return "column:" + string(t.status)
	case targetCard:
		return fmt.Sprintf("card:%d", t.ticketID)
	default:
		return "none"
	}
}

type DragState int

const (
	DragIdle DragState = iota
	DragDragging
)

func (s DragState) String() string {
	if s == DragDragging {
		return "dragging"
	}
	return "idle"
}

// Gesture is the state of an in-progress drag.
type Gesture struct {
	TicketID int64
	// Origin is the column the ticket was displayed in when the gesture
	// started.
	Origin ticket.Status
	// OriginStatus is the stored status at gesture start. Drops are compared
	// against it, not against the previewed status. It differs from Origin
	// only for unrecognized statuses.
	OriginStatus ticket.Status
	Hover        DropTarget
}

type Committer interface {
	Commit(ctx context.Context, req CommitRequest) (*Mutation, error)
}

// DragMachine turns pointer events into at most one commit per gesture.
// Hovering previews the move in the repository without contacting the
// remote service.
type DragMachine struct {
	repo      *Repository
	committer Committer

	mu      sync.Mutex
	gesture *Gesture
}

func NewDragMachine(repo *Repository, committer Committer) *DragMachine {
	return &DragMachine{repo: repo, committer: committer}
}

func (d *DragMachine) State() DragState {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gesture == nil {
		return DragIdle
	}
	return DragDragging
}

func (d *DragMachine) Gesture() (Gesture, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gesture == nil {
		return Gesture{}, false
	}
	return *d.gesture, true
}

func (d *DragMachine) Start(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gesture != nil {
		return fmt.Errorf("start drag of ticket %d: %w", id, ErrGestureInProgress)
	}
	t, ok := d.repo.Ticket(id)
	if !ok {
		return fmt.Errorf("start drag of ticket %d: %w", id, ErrTicketNotFound)
	}
	d.gesture = &Gesture{
		TicketID:     id,
		Origin:       t.Status.Column(),
		OriginStatus: t.Status,
	}
	return nil
}

// resolve maps a target to the column it stands for. A card resolves to the
// card's current column.
func (d *DragMachine) resolve(target DropTarget) (ticket.Status, bool) {
	switch target.kind {
	case targetColumn:
		if !target.status.Valid() {
			return "", false
		}
		return target.status, true
	case targetCard:
		t, ok := d.repo.Ticket(target.ticketID)
		if !ok {
			return "", false
		}
		return t.Status.Column(), true
	default:
		return "", false
	}
}

// Hover records the target under the pointer and previews the move when it
// resolves to a status other than the ticket's cached one.
func (d *DragMachine) Hover(target DropTarget) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gesture == nil {
		return ErrNoGesture
	}
	d.gesture.Hover = target
	status, ok := d.resolve(target)
	if !ok {
		return nil
	}
	cur, ok := d.repo.Ticket(d.gesture.TicketID)
	if !ok {
		return nil
	}
	if cur.Status != status {
		d.repo.ApplyPatch(d.gesture.TicketID, StatusPatch(status))
	}
	return nil
}

// Drop ends the gesture. A commit is issued only when the target resolves to
// a status other than the one stored at gesture start; otherwise the returned
// Mutation is nil and any preview stays in place.
func (d *DragMachine) Drop(ctx context.Context, target DropTarget) (*Mutation, error) {
	d.mu.Lock()
	if d.gesture == nil {
		d.mu.Unlock()
		return nil, ErrNoGesture
	}
	g := *d.gesture
	status, ok := d.resolve(target)
	d.gesture = nil
	d.mu.Unlock()

	if !ok || status == g.OriginStatus {
		return nil, nil
	}
	return d.committer.Commit(ctx, CommitRequest{
		TicketID: g.TicketID,
		Status:   status,
		Origin:   g.OriginStatus,
	})
}

// Cancel ends the gesture without a commit and undoes any preview.
func (d *DragMachine) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gesture == nil {
		return ErrNoGesture
	}
	g := d.gesture
	d.gesture = nil
	if cur, ok := d.repo.Ticket(g.TicketID); ok && cur.Status != g.OriginStatus {
		d.repo.ApplyPatch(g.TicketID, StatusPatch(g.OriginStatus))
	}
	return nil
}
