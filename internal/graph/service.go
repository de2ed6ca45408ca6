package graph

import (
	"context"
	"strings"

	"github.com/kazz187/ticketboard/internal/ticket"
	"github.com/kazz187/ticketboard/pkg/cerr"
)

type TicketLister interface {
	ListByProject(ctx context.Context, projectID string) ([]*ticket.Ticket, error)
}

type Service struct {
	tickets TicketLister
}

func NewService(tickets TicketLister) *Service {
	return &Service{tickets: tickets}
}

func (s *Service) GetGraph(ctx context.Context, projectID string) (*Graph, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, cerr.NewError(cerr.InvalidArgument, "invalid request", nil).
			AddFieldViolation("project_id", "required", "project_id is required")
	}
	ts, err := s.tickets.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	flat := make([]ticket.Ticket, len(ts))
	for i, t := range ts {
		flat[i] = *t
	}
	return Build(flat), nil
}
