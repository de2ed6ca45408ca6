package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/kazz187/ticketboard/internal/eventbus"
	"github.com/kazz187/ticketboard/internal/ticket"
	"github.com/kazz187/ticketboard/pkg/clog"
	"github.com/kazz187/ticketboard/pkg/panicerr"
)

type LoadStatus int

const (
	LoadIdle LoadStatus = iota
	LoadLoading
	LoadReady
	LoadFailed
)

func (s LoadStatus) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadLoading:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadState is what a view shows in place of, or above, the board.
type LoadState struct {
	Status   LoadStatus
	Err      error
	LoadedAt time.Time
}

type CommitRequest struct {
	TicketID int64
	Status   ticket.Status
	// Origin is the ticket's status when the gesture started. When set it
	// is the rollback value instead of whatever the repository holds now,
	// which may already show a hover preview.
	Origin ticket.Status
}

// Mutation tracks one optimistic commit until its reconciling refresh has
// finished.
type Mutation struct {
	TicketID int64
	Status   ticket.Status

	done       chan struct{}
	err        error
	refreshErr error
}

func newMutation(req CommitRequest) *Mutation {
	return &Mutation{
		TicketID: req.TicketID,
		Status:   req.Status,
		done:     make(chan struct{}),
	}
}

func (m *Mutation) finish(writeErr, refreshErr error) {
	m.err = writeErr
	m.refreshErr = refreshErr
	close(m.done)
}

func (m *Mutation) Done() <-chan struct{} {
	return m.done
}

// Wait blocks until the mutation has settled and returns the remote write
// error, if any.
func (m *Mutation) Wait(ctx context.Context) error {
	select {
	case <-m.done:
		return m.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err is nil until Done is closed.
func (m *Mutation) Err() error {
	select {
	case <-m.done:
		return m.err
	default:
		return nil
	}
}

// RefreshErr reports how the reconciling refresh ended. ErrRefreshSuperseded
// means a later commit or refresh took over.
func (m *Mutation) RefreshErr() error {
	select {
	case <-m.done:
		return m.refreshErr
	default:
		return nil
	}
}

type pendingWrite struct {
	seq    uint64
	status ticket.Status
}

// Controller applies status changes to the repository before the remote
// service confirms them and reconciles with a full refresh afterwards.
type Controller struct {
	repo *Repository
	svc  TicketService
	bus  *eventbus.Bus
	cfg  Config
	wg   conc.WaitGroup

	mu sync.Mutex
	// epoch changes on project switch; work started under an older epoch
	// must not touch the repository.
	epoch         uint64
	refreshGen    uint64
	refreshCancel context.CancelFunc
	seq           uint64
	pending       map[int64]pendingWrite
	state         LoadState
	closed        bool
}

func NewController(repo *Repository, svc TicketService, opts ...Option) *Controller {
	cfg := newConfig(opts)
	return &Controller{
		repo:    repo,
		svc:     svc,
		bus:     cfg.Bus,
		cfg:     cfg,
		pending: make(map[int64]pendingWrite),
	}
}

func (c *Controller) State() LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending reports whether an optimistic status for id is still waiting on its
// remote write.
func (c *Controller) Pending(id int64) (ticket.Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[id]
	return p.status, ok
}

// cancelRefreshLocked invalidates any refresh in flight. c.mu must be held.
func (c *Controller) cancelRefreshLocked() {
	c.refreshGen++
	if c.refreshCancel != nil {
		c.refreshCancel()
		c.refreshCancel = nil
	}
}

// Commit applies req locally and starts the remote write. The returned
// Mutation completes once the write has settled and the repository has been
// refreshed from the remote service.
func (c *Controller) Commit(ctx context.Context, req CommitRequest) (*Mutation, error) {
	if !req.Status.Valid() {
		return nil, fmt.Errorf("commit ticket %d: %w: %q", req.TicketID, ErrInvalidStatus, req.Status)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	snap := c.repo.Snapshot()
	if _, ok := snap.Ticket(req.TicketID); !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("commit ticket %d: %w", req.TicketID, ErrTicketNotFound)
	}
	if req.Origin != "" {
		snap = snap.WithStatus(req.TicketID, req.Origin)
	}
	c.cancelRefreshLocked()
	c.seq++
	seq := c.seq
	c.pending[req.TicketID] = pendingWrite{seq: seq, status: req.Status}
	epoch := c.epoch
	projectID := c.repo.ProjectID()
	c.repo.ApplyPatch(req.TicketID, StatusPatch(req.Status))
	c.mu.Unlock()

	m := newMutation(req)
	bg := context.WithoutCancel(ctx)
	c.wg.Go(func() {
		writeErr := c.write(bg, projectID, req)
		c.settle(bg, snap, req, seq, epoch, projectID, writeErr)
		m.finish(writeErr, c.refresh(bg, epoch))
	})
	return m, nil
}

func (c *Controller) write(ctx context.Context, projectID string, req CommitRequest) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.WriteTimeout)
	defer cancel()
	err := panicerr.SafeContext(func(ctx context.Context) error {
		return c.svc.PatchTicketStatus(ctx, req.TicketID, req.Status)
	})(ctx)
	if err != nil {
		return fmt.Errorf("failed to patch ticket %d status: %w", req.TicketID, err)
	}
	return nil
}

// settle clears the pending entry and, on failure, rolls the ticket back.
// A failed write that has been superseded by a newer commit on the same
// ticket leaves the newer optimistic value alone. Refreshes still in flight
// lose their generation in the same critical section, so a fetch taken
// before the write landed cannot replace the settled value.
func (c *Controller) settle(ctx context.Context, snap Snapshot, req CommitRequest, seq, epoch uint64, projectID string, writeErr error) {
	c.mu.Lock()
	current := epoch == c.epoch && c.pending[req.TicketID].seq == seq
	if current {
		delete(c.pending, req.TicketID)
	}
	if epoch == c.epoch {
		c.cancelRefreshLocked()
	}
	rolledBack := false
	if writeErr != nil && current {
		rolledBack = c.repo.RestoreTicket(snap, req.TicketID)
	}
	c.mu.Unlock()

	md := map[string]string{"status": string(req.Status)}
	if writeErr == nil {
		c.bus.PublishNew(eventbus.CommitSucceeded, projectID, req.TicketID, md)
		return
	}
	md["error"] = writeErr.Error()
	md["rolled_back"] = fmt.Sprint(rolledBack)
	c.bus.PublishNew(eventbus.CommitFailed, projectID, req.TicketID, md)
	slog.WarnContext(ctx, "ticket status commit failed",
		"project_id", projectID,
		"ticket_id", req.TicketID,
		"status", req.Status,
		"rolled_back", rolledBack,
		clog.ErrorAttributeKey, writeErr,
	)
}

// Refresh re-fetches the current project and replaces the repository
// contents, keeping optimistic values whose writes are still in flight.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	epoch := c.epoch
	c.mu.Unlock()
	return c.refresh(ctx, epoch)
}

// Load switches the repository to projectID and fetches it. Work still in
// flight for the previous project is discarded when it settles.
func (c *Controller) Load(ctx context.Context, projectID string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if projectID != c.repo.ProjectID() {
		c.epoch++
		c.pending = make(map[int64]pendingWrite)
		c.cancelRefreshLocked()
		c.repo.Reset(projectID)
	}
	c.state = LoadState{Status: LoadLoading}
	epoch := c.epoch
	c.mu.Unlock()
	return c.refresh(ctx, epoch)
}

func (c *Controller) refresh(ctx context.Context, epoch uint64) error {
	c.mu.Lock()
	if epoch != c.epoch || c.closed {
		c.mu.Unlock()
		return ErrRefreshSuperseded
	}
	c.cancelRefreshLocked()
	gen := c.refreshGen
	rctx, cancel := context.WithTimeout(ctx, c.cfg.RefreshTimeout)
	c.refreshCancel = cancel
	projectID := c.repo.ProjectID()
	c.mu.Unlock()
	defer cancel()

	tickets, err := panicerr.SafeValue(func(ctx context.Context) ([]ticket.Ticket, error) {
		return c.svc.FetchTickets(ctx, projectID)
	})(rctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.refreshGen || epoch != c.epoch {
		slog.DebugContext(ctx, "discarding superseded refresh", "project_id", projectID)
		return ErrRefreshSuperseded
	}
	c.refreshCancel = nil
	if err != nil {
		err = fmt.Errorf("failed to fetch tickets for project %s: %w", projectID, err)
		c.state = LoadState{Status: LoadFailed, Err: err}
		c.bus.PublishNew(eventbus.LoadFailed, projectID, 0, map[string]string{"error": err.Error()})
		slog.WarnContext(ctx, "ticket refresh failed", "project_id", projectID, clog.ErrorAttributeKey, err)
		return err
	}

	for i := range tickets {
		if p, ok := c.pending[tickets[i].ID]; ok {
			tickets[i].Status = p.status
		}
	}
	c.repo.ReplaceAll(tickets)
	c.state = LoadState{Status: LoadReady, LoadedAt: time.Now()}
	c.bus.PublishNew(eventbus.LoadCompleted, projectID, 0, map[string]string{"count": fmt.Sprint(len(tickets))})
	return nil
}

// Wait blocks until every started commit has settled.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close rejects new work, cancels a refresh in flight and waits for pending
// writes to settle.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancelRefreshLocked()
	c.mu.Unlock()
	c.wg.Wait()
}

// IsSuperseded reports whether err only signals that a newer refresh won.
func IsSuperseded(err error) bool {
	return errors.Is(err, ErrRefreshSuperseded)
}
