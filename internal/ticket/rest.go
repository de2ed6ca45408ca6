package ticket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	ticketboardv1 "github.com/kazz187/ticketboard/internal/api/ticketboardv1"
	"github.com/kazz187/ticketboard/pkg/cerr"
)

// RegisterRoutes mounts the JSON endpoints used by the web board. The router
// is expected to carry cerr.NewConvertConnectErrorChiMiddleware.
func RegisterRoutes(r chi.Router, svc *Service) {
	h := &restHandler{svc: svc}
	r.Get("/projects/{projectID}/tickets", h.list)
	r.Post("/projects/{projectID}/tickets", h.create)
	r.Get("/tickets/{ticketID}", h.get)
	r.Patch("/tickets/{ticketID}", h.update)
	r.Delete("/tickets/{ticketID}", h.delete)
}

type restHandler struct {
	svc *Service
}

func ticketIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "ticketID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("invalid ticket id %q", raw), err)
	}
	return id, nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return cerr.NewError(cerr.InvalidArgument, "invalid request body", err)
	}
	return nil
}

func (h *restHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tickets, err := h.svc.ListTickets(ctx, chi.URLParam(r, "projectID"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, &ticketboardv1.ListTicketsResponse{Tickets: ToAPIList(tickets)})
}

func (h *restHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body ticketboardv1.CreateTicketRequest
	if err := decodeBody(r, &body); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	body.ProjectID = chi.URLParam(r, "projectID")
	t, err := h.svc.CreateTicket(ctx, createRequestFromAPI(&body))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponseWithStatus(ctx, http.StatusCreated, ToAPI(t))
}

func (h *restHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := ticketIDParam(r)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	t, err := h.svc.GetTicket(ctx, id)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, ToAPI(t))
}

func (h *restHandler) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := ticketIDParam(r)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	var body ticketboardv1.UpdateTicketRequest
	if err := decodeBody(r, &body); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	t, err := h.svc.UpdateTicket(ctx, id, updateRequestFromAPI(&body))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, ToAPI(t))
}

func (h *restHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := ticketIDParam(r)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	if err := h.svc.DeleteTicket(ctx, id); err != nil {
		cerr.SetJSONError(ctx, err)
	}
}
