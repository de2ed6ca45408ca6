package client

import (
	"context"
	"fmt"
	"net/http"

	"connectrpc.com/connect"

	ticketboardv1 "github.com/kazz187/ticketboard/internal/api/ticketboardv1"
	"github.com/kazz187/ticketboard/internal/api/ticketboardv1/ticketboardv1connect"
	"github.com/kazz187/ticketboard/internal/board"
	"github.com/kazz187/ticketboard/internal/graph"
	"github.com/kazz187/ticketboard/internal/ticket"
	"github.com/kazz187/ticketboard/pkg/cerr"
)

var (
	_ board.TicketService = (*TicketClient)(nil)
	_ board.GraphSource   = (*TicketClient)(nil)
)

const APIKeyHeader = "X-API-Key"

type config struct {
	httpClient connect.HTTPClient
	apiKey     string
	options    []connect.ClientOption
}

type Option func(*config)

func WithHTTPClient(c connect.HTTPClient) Option {
	return func(cfg *config) {
		cfg.httpClient = c
	}
}

func WithAPIKey(key string) Option {
	return func(cfg *config) {
		cfg.apiKey = key
	}
}

func WithClientOptions(opts ...connect.ClientOption) Option {
	return func(cfg *config) {
		cfg.options = append(cfg.options, opts...)
	}
}

// TicketClient talks to the ticketboard server over connect and serves as
// the board's remote side.
type TicketClient struct {
	tickets ticketboardv1connect.TicketServiceClient
	graph   ticketboardv1connect.GraphServiceClient
}

func NewTicketClient(baseURL string, opts ...Option) *TicketClient {
	cfg := config{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(&cfg)
	}
	clientOpts := cfg.options
	if cfg.apiKey != "" {
		clientOpts = append(clientOpts, connect.WithInterceptors(newAPIKeyInterceptor(cfg.apiKey)))
	}
	return &TicketClient{
		tickets: ticketboardv1connect.NewTicketServiceClient(cfg.httpClient, baseURL, clientOpts...),
		graph:   ticketboardv1connect.NewGraphServiceClient(cfg.httpClient, baseURL, clientOpts...),
	}
}

func newAPIKeyInterceptor(key string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				req.Header().Set(APIKeyHeader, key)
			}
			return next(ctx, req)
		}
	}
}

func (c *TicketClient) FetchTickets(ctx context.Context, projectID string) ([]ticket.Ticket, error) {
	resp, err := c.tickets.ListTickets(ctx, connect.NewRequest(&ticketboardv1.ListTicketsRequest{
		ProjectID: projectID,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", cerr.FromConnectError(err))
	}
	out := make([]ticket.Ticket, 0, len(resp.Msg.Tickets))
	for _, t := range resp.Msg.Tickets {
		out = append(out, ticket.FromAPI(t))
	}
	return out, nil
}

func (c *TicketClient) PatchTicketStatus(ctx context.Context, ticketID int64, status ticket.Status) error {
	_, err := c.tickets.UpdateTicketStatus(ctx, connect.NewRequest(&ticketboardv1.UpdateTicketStatusRequest{
		ID:     ticketID,
		Status: string(status),
	}))
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", cerr.FromConnectError(err))
	}
	return nil
}

func (c *TicketClient) FetchGraph(ctx context.Context, projectID string) (*graph.Graph, error) {
	resp, err := c.graph.GetTicketGraph(ctx, connect.NewRequest(&ticketboardv1.GetTicketGraphRequest{
		ProjectID: projectID,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket graph: %w", cerr.FromConnectError(err))
	}
	return graph.FromAPI(resp.Msg), nil
}

func (c *TicketClient) GetTicket(ctx context.Context, id int64) (ticket.Ticket, error) {
	resp, err := c.tickets.GetTicket(ctx, connect.NewRequest(&ticketboardv1.GetTicketRequest{ID: id}))
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to get ticket: %w", cerr.FromConnectError(err))
	}
	return ticket.FromAPI(resp.Msg.Ticket), nil
}

type CreateTicketParams struct {
	ProjectID   string
	Title       string
	Description string
	Type        ticket.Type
	Priority    ticket.Priority
	ParentID    *int64
}

func (c *TicketClient) CreateTicket(ctx context.Context, p CreateTicketParams) (ticket.Ticket, error) {
	resp, err := c.tickets.CreateTicket(ctx, connect.NewRequest(&ticketboardv1.CreateTicketRequest{
		ProjectID:   p.ProjectID,
		Title:       p.Title,
		Description: p.Description,
		Type:        string(p.Type),
		Priority:    string(p.Priority),
		ParentID:    p.ParentID,
	}))
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to create ticket: %w", cerr.FromConnectError(err))
	}
	return ticket.FromAPI(resp.Msg.Ticket), nil
}

func (c *TicketClient) DeleteTicket(ctx context.Context, id int64) error {
	if _, err := c.tickets.DeleteTicket(ctx, connect.NewRequest(&ticketboardv1.DeleteTicketRequest{ID: id})); err != nil {
		return fmt.Errorf("failed to delete ticket: %w", cerr.FromConnectError(err))
	}
	return nil
}
