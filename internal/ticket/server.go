package ticket

import (
	"context"

	"connectrpc.com/connect"

	ticketboardv1 "github.com/kazz187/ticketboard/internal/api/ticketboardv1"
	"github.com/kazz187/ticketboard/internal/api/ticketboardv1/ticketboardv1connect"
)

var _ ticketboardv1connect.TicketServiceHandler = (*Server)(nil)

type Server struct {
	svc *Service
}

func NewServer(svc *Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) ListTickets(ctx context.Context, req *connect.Request[ticketboardv1.ListTicketsRequest]) (*connect.Response[ticketboardv1.ListTicketsResponse], error) {
	tickets, err := s.svc.ListTickets(ctx, req.Msg.ProjectID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&ticketboardv1.ListTicketsResponse{
		Tickets: ToAPIList(tickets),
	}), nil
}

func (s *Server) GetTicket(ctx context.Context, req *connect.Request[ticketboardv1.GetTicketRequest]) (*connect.Response[ticketboardv1.GetTicketResponse], error) {
	t, err := s.svc.GetTicket(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&ticketboardv1.GetTicketResponse{
		Ticket: ToAPI(t),
	}), nil
}

func (s *Server) CreateTicket(ctx context.Context, req *connect.Request[ticketboardv1.CreateTicketRequest]) (*connect.Response[ticketboardv1.CreateTicketResponse], error) {
	t, err := s.svc.CreateTicket(ctx, createRequestFromAPI(req.Msg))
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&ticketboardv1.CreateTicketResponse{
		Ticket: ToAPI(t),
	}), nil
}

func (s *Server) UpdateTicket(ctx context.Context, req *connect.Request[ticketboardv1.UpdateTicketRequest]) (*connect.Response[ticketboardv1.UpdateTicketResponse], error) {
	t, err := s.svc.UpdateTicket(ctx, req.Msg.ID, updateRequestFromAPI(req.Msg))
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&ticketboardv1.UpdateTicketResponse{
		Ticket: ToAPI(t),
	}), nil
}

func (s *Server) UpdateTicketStatus(ctx context.Context, req *connect.Request[ticketboardv1.UpdateTicketStatusRequest]) (*connect.Response[ticketboardv1.UpdateTicketStatusResponse], error) {
	t, err := s.svc.UpdateTicketStatus(ctx, req.Msg.ID, Status(req.Msg.Status))
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&ticketboardv1.UpdateTicketStatusResponse{
		Ticket: ToAPI(t),
	}), nil
}

func (s *Server) DeleteTicket(ctx context.Context, req *connect.Request[ticketboardv1.DeleteTicketRequest]) (*connect.Response[ticketboardv1.DeleteTicketResponse], error) {
	if err := s.svc.DeleteTicket(ctx, req.Msg.ID); err != nil {
		return nil, err
	}
	return connect.NewResponse(&ticketboardv1.DeleteTicketResponse{}), nil
}
