package graph

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"

	ticketboardv1 "github.com/kazz187/ticketboard/internal/api/ticketboardv1"
	"github.com/kazz187/ticketboard/internal/api/ticketboardv1/ticketboardv1connect"
	"github.com/kazz187/ticketboard/pkg/cerr"
)

var _ ticketboardv1connect.GraphServiceHandler = (*Server)(nil)

type Server struct {
	svc *Service
}

func NewServer(svc *Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) GetTicketGraph(ctx context.Context, req *connect.Request[ticketboardv1.GetTicketGraphRequest]) (*connect.Response[ticketboardv1.GetTicketGraphResponse], error) {
	g, err := s.svc.GetGraph(ctx, req.Msg.ProjectID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(ToAPI(g)), nil
}

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/projects/{projectID}/graph", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		g, err := svc.GetGraph(ctx, chi.URLParam(r, "projectID"))
		if err != nil {
			cerr.SetJSONError(ctx, err)
			return
		}
		cerr.SetJSONResponse(ctx, ToAPI(g))
	})
}
