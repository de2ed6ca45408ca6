package ticket

import "context"

type Repository interface {
	// Create assigns t.ID and persists t.
	Create(ctx context.Context, t *Ticket) error
	Get(ctx context.Context, id int64) (*Ticket, error)
	ListByProject(ctx context.Context, projectID string) ([]*Ticket, error)
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, id int64) error
}
