package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kazz187/ticketboard/pkg/cerr"
	"github.com/kazz187/ticketboard/pkg/clog"
)

type CreateRequest struct {
	ProjectID   string
	Title       string
	Description string
	// Type defaults to task.
	Type Type
	// Priority defaults to medium.
	Priority Priority
	ParentID *int64
}

// UpdateRequest is a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func invalidArgument(msg string) *cerr.Error {
	return cerr.NewError(cerr.InvalidArgument, msg, nil)
}

func (s *Service) CreateTicket(ctx context.Context, req CreateRequest) (*Ticket, error) {
	title := strings.TrimSpace(req.Title)
	typ := req.Type
	if typ == TypeNone {
		typ = TypeTask
	}
	prio := req.Priority
	if prio == "" {
		prio = PriorityMedium
	}

	verr := invalidArgument("invalid ticket")
	if strings.TrimSpace(req.ProjectID) == "" {
		verr.AddFieldViolation("project_id", "required", "project_id is required")
	}
	if title == "" {
		verr.AddFieldViolation("title", "required", "title is required")
	}
	if !typ.Valid() {
		verr.AddFieldViolation("type", "enum", fmt.Sprintf("unknown type %q", typ))
	}
	if !prio.Valid() {
		verr.AddFieldViolation("priority", "enum", fmt.Sprintf("unknown priority %q", prio))
	}
	if len(verr.Details) > 0 {
		return nil, verr
	}

	if req.ParentID != nil {
		if err := s.validateParent(ctx, req.ProjectID, typ, *req.ParentID); err != nil {
			return nil, err
		}
	} else if !IsValidParent(typ, TypeNone) {
		return nil, invalidArgument("invalid ticket").
			AddFieldViolation("parent_id", "hierarchy", fmt.Sprintf("%s requires a parent", typ))
	}

	now := s.now()
	t := &Ticket{
		ProjectID:   req.ProjectID,
		Title:       title,
		Description: req.Description,
		Type:        typ,
		ParentID:    req.ParentID,
		Status:      StatusOpen,
		Priority:    prio,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	clog.AddAttributes(ctx, map[string]any{"project_id": t.ProjectID, "ticket_id": t.ID})
	slog.DebugContext(ctx, "ticket created", "type", t.Type)
	return t, nil
}

func (s *Service) validateParent(ctx context.Context, projectID string, typ Type, parentID int64) error {
	if typ == TypeEpic {
		return invalidArgument("invalid ticket").
			AddFieldViolation("parent_id", "hierarchy", "epic cannot have a parent")
	}
	parent, err := s.repo.Get(ctx, parentID)
	if err != nil {
		if cerr.IsCode(err, cerr.NotFound) {
			return invalidArgument("invalid ticket").
				AddFieldViolation("parent_id", "exists", fmt.Sprintf("parent #%d not found", parentID))
		}
		return err
	}
	if parent.ProjectID != projectID {
		return invalidArgument("invalid ticket").
			AddFieldViolation("parent_id", "same_project", fmt.Sprintf("parent #%d belongs to another project", parentID))
	}
	if !IsValidParent(typ, parent.Type) {
		return invalidArgument("invalid ticket").
			AddFieldViolation("parent_id", "hierarchy",
				fmt.Sprintf("%s cannot be a child of %s", typ, parent.Type))
	}
	return nil
}

func (s *Service) ListTickets(ctx context.Context, projectID string) ([]*Ticket, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, invalidArgument("invalid request").
			AddFieldViolation("project_id", "required", "project_id is required")
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *Service) GetTicket(ctx context.Context, id int64) (*Ticket, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateTicket(ctx context.Context, id int64, req UpdateRequest) (*Ticket, error) {
	verr := invalidArgument("invalid ticket")
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		verr.AddFieldViolation("title", "required", "title must not be empty")
	}
	if req.Status != nil && !req.Status.Valid() {
		verr.AddFieldViolation("status", "enum", fmt.Sprintf("unknown status %q", *req.Status))
	}
	if req.Priority != nil && !req.Priority.Valid() {
		verr.AddFieldViolation("priority", "enum", fmt.Sprintf("unknown priority %q", *req.Priority))
	}
	if len(verr.Details) > 0 {
		return nil, verr
	}

	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	t.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	clog.AddAttributes(ctx, map[string]any{"project_id": t.ProjectID, "ticket_id": t.ID})
	return t, nil
}

// UpdateTicketStatus is the status-only write issued by a board drop.
func (s *Service) UpdateTicketStatus(ctx context.Context, id int64, status Status) (*Ticket, error) {
	return s.UpdateTicket(ctx, id, UpdateRequest{Status: &status})
}

// DeleteTicket removes a single ticket. Children keep their parent reference.
func (s *Service) DeleteTicket(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	clog.AddAttribute(ctx, "ticket_id", id)
	return nil
}
