// Package ticketboardv1connect binds the ticketboard.v1 services to connect.
package ticketboardv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	ticketboardv1 "github.com/kazz187/ticketboard/internal/api/ticketboardv1"
)

const TicketServiceName = "ticketboard.v1.TicketService"

const (
	TicketServiceListTicketsProcedure        = "/ticketboard.v1.TicketService/ListTickets"
	TicketServiceGetTicketProcedure          = "/ticketboard.v1.TicketService/GetTicket"
	TicketServiceCreateTicketProcedure       = "/ticketboard.v1.TicketService/CreateTicket"
	TicketServiceUpdateTicketProcedure       = "/ticketboard.v1.TicketService/UpdateTicket"
	TicketServiceUpdateTicketStatusProcedure = "/ticketboard.v1.TicketService/UpdateTicketStatus"
	TicketServiceDeleteTicketProcedure       = "/ticketboard.v1.TicketService/DeleteTicket"
)

type TicketServiceClient interface {
	ListTickets(context.Context, *connect.Request[ticketboardv1.ListTicketsRequest]) (*connect.Response[ticketboardv1.ListTicketsResponse], error)
	GetTicket(context.Context, *connect.Request[ticketboardv1.GetTicketRequest]) (*connect.Response[ticketboardv1.GetTicketResponse], error)
	CreateTicket(context.Context, *connect.Request[ticketboardv1.CreateTicketRequest]) (*connect.Response[ticketboardv1.CreateTicketResponse], error)
	UpdateTicket(context.Context, *connect.Request[ticketboardv1.UpdateTicketRequest]) (*connect.Response[ticketboardv1.UpdateTicketResponse], error)
	UpdateTicketStatus(context.Context, *connect.Request[ticketboardv1.UpdateTicketStatusRequest]) (*connect.Response[ticketboardv1.UpdateTicketStatusResponse], error)
	DeleteTicket(context.Context, *connect.Request[ticketboardv1.DeleteTicketRequest]) (*connect.Response[ticketboardv1.DeleteTicketResponse], error)
}

type ticketServiceClient struct {
	listTickets        *connect.Client[ticketboardv1.ListTicketsRequest, ticketboardv1.ListTicketsResponse]
	getTicket          *connect.Client[ticketboardv1.GetTicketRequest, ticketboardv1.GetTicketResponse]
	createTicket       *connect.Client[ticketboardv1.CreateTicketRequest, ticketboardv1.CreateTicketResponse]
	updateTicket       *connect.Client[ticketboardv1.UpdateTicketRequest, ticketboardv1.UpdateTicketResponse]
	updateTicketStatus *connect.Client[ticketboardv1.UpdateTicketStatusRequest, ticketboardv1.UpdateTicketStatusResponse]
	deleteTicket       *connect.Client[ticketboardv1.DeleteTicketRequest, ticketboardv1.DeleteTicketResponse]
}

// NewTicketServiceClient always speaks the JSON codec; opts are applied after it.
func NewTicketServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TicketServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(ticketboardv1.JSONCodec{})}, opts...)
	return &ticketServiceClient{
		listTickets: connect.NewClient[ticketboardv1.ListTicketsRequest, ticketboardv1.ListTicketsResponse](
			httpClient, baseURL+TicketServiceListTicketsProcedure,
			append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...),
		getTicket: connect.NewClient[ticketboardv1.GetTicketRequest, ticketboardv1.GetTicketResponse](
			httpClient, baseURL+TicketServiceGetTicketProcedure,
			append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...),
		createTicket: connect.NewClient[ticketboardv1.CreateTicketRequest, ticketboardv1.CreateTicketResponse](
			httpClient, baseURL+TicketServiceCreateTicketProcedure, opts...),
		updateTicket: connect.NewClient[ticketboardv1.UpdateTicketRequest, ticketboardv1.UpdateTicketResponse](
			httpClient, baseURL+TicketServiceUpdateTicketProcedure, opts...),
		updateTicketStatus: connect.NewClient[ticketboardv1.UpdateTicketStatusRequest, ticketboardv1.UpdateTicketStatusResponse](
			httpClient, baseURL+TicketServiceUpdateTicketStatusProcedure,
			append(opts, connect.WithIdempotency(connect.IdempotencyIdempotent))...),
		deleteTicket: connect.NewClient[ticketboardv1.DeleteTicketRequest, ticketboardv1.DeleteTicketResponse](
			httpClient, baseURL+TicketServiceDeleteTicketProcedure,
			append(opts, connect.WithIdempotency(connect.IdempotencyIdempotent))...),
	}
}

func (c *ticketServiceClient) ListTickets(ctx context.Context, req *connect.Request[ticketboardv1.ListTicketsRequest]) (*connect.Response[ticketboardv1.ListTicketsResponse], error) {
	return c.listTickets.CallUnary(ctx, req)
}

func (c *ticketServiceClient) GetTicket(ctx context.Context, req *connect.Request[ticketboardv1.GetTicketRequest]) (*connect.Response[ticketboardv1.GetTicketResponse], error) {
	return c.getTicket.CallUnary(ctx, req)
}

func (c *ticketServiceClient) CreateTicket(ctx context.Context, req *connect.Request[ticketboardv1.CreateTicketRequest]) (*connect.Response[ticketboardv1.CreateTicketResponse], error) {
	return c.createTicket.CallUnary(ctx, req)
}

func (c *ticketServiceClient) UpdateTicket(ctx context.Context, req *connect.Request[ticketboardv1.UpdateTicketRequest]) (*connect.Response[ticketboardv1.UpdateTicketResponse], error) {
	return c.updateTicket.CallUnary(ctx, req)
}

func (c *ticketServiceClient) UpdateTicketStatus(ctx context.Context, req *connect.Request[ticketboardv1.UpdateTicketStatusRequest]) (*connect.Response[ticketboardv1.UpdateTicketStatusResponse], error) {
	return c.updateTicketStatus.CallUnary(ctx, req)
}

func (c *ticketServiceClient) DeleteTicket(ctx context.Context, req *connect.Request[ticketboardv1.DeleteTicketRequest]) (*connect.Response[ticketboardv1.DeleteTicketResponse], error) {
	return c.deleteTicket.CallUnary(ctx, req)
}

type TicketServiceHandler interface {
	ListTickets(context.Context, *connect.Request[ticketboardv1.ListTicketsRequest]) (*connect.Response[ticketboardv1.ListTicketsResponse], error)
	GetTicket(context.Context, *connect.Request[ticketboardv1.GetTicketRequest]) (*connect.Response[ticketboardv1.GetTicketResponse], error)
	CreateTicket(context.Context, *connect.Request[ticketboardv1.CreateTicketRequest]) (*connect.Response[ticketboardv1.CreateTicketResponse], error)
	UpdateTicket(context.Context, *connect.Request[ticketboardv1.UpdateTicketRequest]) (*connect.Response[ticketboardv1.UpdateTicketResponse], error)
	UpdateTicketStatus(context.Context, *connect.Request[ticketboardv1.UpdateTicketStatusRequest]) (*connect.Response[ticketboardv1.UpdateTicketStatusResponse], error)
	DeleteTicket(context.Context, *connect.Request[ticketboardv1.DeleteTicketRequest]) (*connect.Response[ticketboardv1.DeleteTicketResponse], error)
}

// NewTicketServiceHandler returns the mount path and handler for svc.
func NewTicketServiceHandler(svc TicketServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(ticketboardv1.JSONCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(TicketServiceListTicketsProcedure, connect.NewUnaryHandler(
		TicketServiceListTicketsProcedure, svc.ListTickets,
		append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...))
	mux.Handle(TicketServiceGetTicketProcedure, connect.NewUnaryHandler(
		TicketServiceGetTicketProcedure, svc.GetTicket,
		append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...))
	mux.Handle(TicketServiceCreateTicketProcedure, connect.NewUnaryHandler(
		TicketServiceCreateTicketProcedure, svc.CreateTicket, opts...))
	mux.Handle(TicketServiceUpdateTicketProcedure, connect.NewUnaryHandler(
		TicketServiceUpdateTicketProcedure, svc.UpdateTicket, opts...))
	mux.Handle(TicketServiceUpdateTicketStatusProcedure, connect.NewUnaryHandler(
		TicketServiceUpdateTicketStatusProcedure, svc.UpdateTicketStatus,
		append(opts, connect.WithIdempotency(connect.IdempotencyIdempotent))...))
	mux.Handle(TicketServiceDeleteTicketProcedure, connect.NewUnaryHandler(
		TicketServiceDeleteTicketProcedure, svc.DeleteTicket,
		append(opts, connect.WithIdempotency(connect.IdempotencyIdempotent))...))
	return "/" + TicketServiceName + "/", mux
}
