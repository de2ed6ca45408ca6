package board

import (
	"context"

	"github.com/kazz187/ticketboard/internal/graph"
	"github.com/kazz187/ticketboard/internal/ticket"
)

// TicketService is the remote side the engine synchronizes with.
type TicketService interface {
	FetchTickets(ctx context.Context, projectID string) ([]ticket.Ticket, error)
	PatchTicketStatus(ctx context.Context, ticketID int64, status ticket.Status) error
}

// GraphSource serves a graph computed by the server. It has the same shape
// as graph.Build over the same tickets.
type GraphSource interface {
	FetchGraph(ctx context.Context, projectID string) (*graph.Graph, error)
}
