package internal

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"connectrpc.com/grpchealth"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kazz187/ticketboard/internal/api/ticketboardv1/ticketboardv1connect"
	"github.com/kazz187/ticketboard/internal/graph"
	"github.com/kazz187/ticketboard/internal/ticket"
	"github.com/kazz187/ticketboard/pkg/cerr"
	"github.com/kazz187/ticketboard/pkg/clog"
)

type Server struct {
	server       *http.Server
	addr         string
	apiKey       string
	ticketSvc    *ticket.Service
	graphSvc     *graph.Service
	ticketServer *ticket.Server
	graphServer  *graph.Server
}

func NewServer(addr, apiKey string, ticketSvc *ticket.Service, graphSvc *graph.Service) *Server {
	return &Server{
		addr:         addr,
		apiKey:       apiKey,
		ticketSvc:    ticketSvc,
		graphSvc:     graphSvc,
		ticketServer: ticket.NewServer(ticketSvc),
		graphServer:  graph.NewServer(graphSvc),
	}
}

// Handler builds the full HTTP handler: REST routes under /api, connect
// services, health checks, CORS, h2c and the API key check.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(
			clog.SlogChiMiddleware(),
			cerr.NewConvertConnectErrorChiMiddleware(),
		)
		ticket.RegisterRoutes(r, s.ticketSvc)
		graph.RegisterRoutes(r, s.graphSvc)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			cerr.SetNewJSONError(r.Context(), cerr.NotFound, "not found", nil)
		})
	})

	mux := http.NewServeMux()

	mux.Handle("/health", &HealthChecker{})
	mux.Handle("/api/", r)
	mux.Handle(grpchealth.NewHandler(grpchealth.NewStaticChecker(
		ticketboardv1connect.TicketServiceName,
		ticketboardv1connect.GraphServiceName,
	)))

	handlerOpts := connect.WithInterceptors(s.interceptors()...)
	mux.Handle(ticketboardv1connect.NewTicketServiceHandler(s.ticketServer, handlerOpts))
	mux.Handle(ticketboardv1connect.NewGraphServiceHandler(s.graphServer, handlerOpts))

	return h2c.NewHandler(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(s.apiKeyMiddleware(mux)), &http2.Server{})
}

// ListenAndServe uses ctx as the base context of every request.
func (s *Server) ListenAndServe(ctx context.Context) error {
	slog.Info("starting server", "addr", s.addr)
	s.server = &http.Server{
		Addr:        s.addr,
		Handler:     s.Handler(),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

type HealthChecker struct{}

func (hc *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) interceptors() []connect.Interceptor {
	return []connect.Interceptor{
		clog.NewSlogConnectInterceptor(clog.WithConnectFilter(clog.DefaultConnectHealthCheckUnaryFilter)),
		cerr.NewConvertConnectErrorInterceptor(),
	}
}

func (s *Server) apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || strings.HasPrefix(r.URL.Path, "/"+grpchealth.HealthV1ServiceName+"/") {
			next.ServeHTTP(w, r)
			return
		}
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			apiKey = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.apiKey)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
