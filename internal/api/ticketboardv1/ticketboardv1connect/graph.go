package ticketboardv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	ticketboardv1 "github.com/kazz187/ticketboard/internal/api/ticketboardv1"
)

const GraphServiceName = "ticketboard.v1.GraphService"

const GraphServiceGetTicketGraphProcedure = "/ticketboard.v1.GraphService/GetTicketGraph"

type GraphServiceClient interface {
	GetTicketGraph(context.Context, *connect.Request[ticketboardv1.GetTicketGraphRequest]) (*connect.Response[ticketboardv1.GetTicketGraphResponse], error)
}

type graphServiceClient struct {
	getTicketGraph *connect.Client[ticketboardv1.GetTicketGraphRequest, ticketboardv1.GetTicketGraphResponse]
}

func NewGraphServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GraphServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{
		connect.WithCodec(ticketboardv1.JSONCodec{}),
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
	}, opts...)
	return &graphServiceClient{
		getTicketGraph: connect.NewClient[ticketboardv1.GetTicketGraphRequest, ticketboardv1.GetTicketGraphResponse](
			httpClient, baseURL+GraphServiceGetTicketGraphProcedure, opts...),
	}
}

func (c *graphServiceClient) GetTicketGraph(ctx context.Context, req *connect.Request[ticketboardv1.GetTicketGraphRequest]) (*connect.Response[ticketboardv1.GetTicketGraphResponse], error) {
	return c.getTicketGraph.CallUnary(ctx, req)
}

type GraphServiceHandler interface {
	GetTicketGraph(context.Context, *connect.Request[ticketboardv1.GetTicketGraphRequest]) (*connect.Response[ticketboardv1.GetTicketGraphResponse], error)
}

func NewGraphServiceHandler(svc GraphServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(ticketboardv1.JSONCodec{}),
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
	}, opts...)
	return "/" + GraphServiceName + "/", connect.NewUnaryHandler(
		GraphServiceGetTicketGraphProcedure, svc.GetTicketGraph, opts...)
}
