package repositoryimpl

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/ticketboard/internal/ticket"
	"github.com/kazz187/ticketboard/pkg/cerr"
	"github.com/kazz187/ticketboard/pkg/storage"
)

var _ ticket.Repository = (*YAMLRepository)(nil)

const ticketsPrefix = "tickets"

// YAMLRepository stores one YAML document per ticket. IDs are allocated from
// the highest ID on storage, so a single process must own the storage.
type YAMLRepository struct {
	storage storage.Storage

	mu     sync.Mutex
	nextID int64
}

func NewYAMLRepository(s storage.Storage) *YAMLRepository {
	return &YAMLRepository{storage: s}
}

// Invalidate drops the cached next ID so the next Create rescans storage.
// Call it when another writer may have added tickets.
func (r *YAMLRepository) Invalidate() {
	r.mu.Lock()
	r.nextID = 0
	r.mu.Unlock()
}

// TicketsPrefix is the storage prefix holding one file per ticket.
func (r *YAMLRepository) TicketsPrefix() string {
	return ticketsPrefix
}

func ticketPath(id int64) string {
	return fmt.Sprintf("%s/%d.yaml", ticketsPrefix, id)
}

func idFromPath(p string) (int64, bool) {
	name := strings.TrimSuffix(path.Base(p), ".yaml")
	id, err := strconv.ParseInt(name, 10, 64)
	return id, err == nil && id > 0
}

func (r *YAMLRepository) allocateID(ctx context.Context) (int64, error) {
	if r.nextID == 0 {
		paths, err := r.storage.List(ctx, ticketsPrefix)
		if err != nil {
			return 0, cerr.WrapStorageReadError("tickets", err)
		}
		var maxID int64
		for _, p := range paths {
			if id, ok := idFromPath(p); ok && id > maxID {
				maxID = id
			}
		}
		r.nextID = maxID + 1
	}
	id := r.nextID
	r.nextID++
	return id, nil
}

func (r *YAMLRepository) write(ctx context.Context, t *ticket.Ticket) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal ticket: %w", err))
	}
	if err := r.storage.Write(ctx, ticketPath(t.ID), data); err != nil {
		return cerr.WrapStorageWriteError("ticket", err)
	}
	return nil
}

func (r *YAMLRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.allocateID(ctx)
	if err != nil {
		return err
	}
	t.ID = id
	return r.write(ctx, t)
}

func (r *YAMLRepository) read(ctx context.Context, p string) (*ticket.Ticket, error) {
	data, err := r.storage.Read(ctx, p)
	if err != nil {
		return nil, cerr.WrapStorageReadError("ticket", err)
	}
	var t ticket.Ticket
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to unmarshal ticket %s: %w", p, err))
	}
	return &t, nil
}

func (r *YAMLRepository) Get(ctx context.Context, id int64) (*ticket.Ticket, error) {
	return r.read(ctx, ticketPath(id))
}

func (r *YAMLRepository) ListByProject(ctx context.Context, projectID string) ([]*ticket.Ticket, error) {
	paths, err := r.storage.List(ctx, ticketsPrefix)
	if err != nil {
		return nil, cerr.WrapStorageReadError("tickets", err)
	}

	all := make([]*ticket.Ticket, 0, len(paths))
	for _, p := range paths {
		if _, ok := idFromPath(p); !ok {
			continue
		}
		t, err := r.read(ctx, p)
		if err != nil {
			// Deleted between List and Read.
			if cerr.IsCode(err, cerr.NotFound) {
				continue
			}
			return nil, err
		}
		if t.ProjectID != projectID {
			continue
		}
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *YAMLRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	exists, err := r.storage.Exists(ctx, ticketPath(t.ID))
	if err != nil {
		return cerr.WrapStorageWriteError("ticket", err)
	}
	if !exists {
		return cerr.NewError(cerr.NotFound, "ticket not found", nil)
	}
	return r.write(ctx, t)
}

func (r *YAMLRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.storage.Delete(ctx, ticketPath(id)); err != nil {
		return cerr.WrapStorageDeleteError("ticket", err)
	}
	return nil
}
