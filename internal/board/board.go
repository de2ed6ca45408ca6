// Package board keeps a client side copy of a project's tickets in sync with
// the remote ticket service while the user drags cards between columns.
package board

import (
	"context"
	"fmt"

	"github.com/kazz187/ticketboard/internal/eventbus"
	"github.com/kazz187/ticketboard/internal/graph"
	"github.com/kazz187/ticketboard/internal/ticket"
)

// Board wires a Repository, Controller and DragMachine for one project at a
// time.
type Board struct {
	bus      *eventbus.Bus
	ownBus   bool
	repo     *Repository
	ctrl     *Controller
	drag     *DragMachine
	graphSrc GraphSource
}

func New(svc TicketService, opts ...Option) *Board {
	cfg := newConfig(opts)
	repo := NewRepository(cfg.Bus)
	ctrl := NewController(repo, svc, append(opts, WithBus(cfg.Bus))...)
	return &Board{
		bus:      cfg.Bus,
		ownBus:   cfg.ownsBus,
		repo:     repo,
		ctrl:     ctrl,
		drag:     NewDragMachine(repo, ctrl),
		graphSrc: cfg.GraphSource,
	}
}

// Open loads projectID, discarding whatever project was shown before.
func (b *Board) Open(ctx context.Context, projectID string) error {
	return b.ctrl.Load(ctx, projectID)
}

func (b *Board) ProjectID() string {
	return b.repo.ProjectID()
}

func (b *Board) Repository() *Repository {
	return b.repo
}

func (b *Board) Controller() *Controller {
	return b.ctrl
}

func (b *Board) Drag() *DragMachine {
	return b.drag
}

func (b *Board) Tickets() []ticket.Ticket {
	return b.repo.Get()
}

func (b *Board) Columns() []ticket.Column {
	return b.repo.Columns()
}

// Graph projects the cached tickets, optimistic values included.
func (b *Board) Graph() *graph.Graph {
	return graph.Build(b.repo.Get())
}

// RemoteGraph asks the server for its projection of the current project.
func (b *Board) RemoteGraph(ctx context.Context) (*graph.Graph, error) {
	if b.graphSrc == nil {
		return nil, ErrNoGraphSource
	}
	g, err := b.graphSrc.FetchGraph(ctx, b.repo.ProjectID())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch graph: %w", err)
	}
	return g, nil
}

// Move commits a status change without a gesture.
func (b *Board) Move(ctx context.Context, id int64, status ticket.Status) (*Mutation, error) {
	return b.ctrl.Commit(ctx, CommitRequest{TicketID: id, Status: status})
}

func (b *Board) Refresh(ctx context.Context) error {
	return b.ctrl.Refresh(ctx)
}

func (b *Board) State() LoadState {
	return b.ctrl.State()
}

func (b *Board) Subscribe(bufSize int) (string, <-chan eventbus.Event) {
	return b.bus.Subscribe(bufSize)
}

func (b *Board) Unsubscribe(id string) {
	b.bus.Unsubscribe(id)
}

// Close waits for in-flight commits. A bus created by New is closed too.
func (b *Board) Close() {
	b.ctrl.Close()
	if b.ownBus {
		b.bus.Close()
	}
}
