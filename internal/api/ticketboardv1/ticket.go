package ticketboardv1

import "time"

type Ticket struct {
	ID          int64     `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	ParentID    *int64    `json:"parent_id"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListTicketsRequest struct {
	ProjectID string `json:"project_id"`
}

type ListTicketsResponse struct {
	Tickets []*Ticket `json:"tickets"`
}

type GetTicketRequest struct {
	ID int64 `json:"id"`
}

type GetTicketResponse struct {
	Ticket *Ticket `json:"ticket"`
}

type CreateTicketRequest struct {
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Priority    string `json:"priority,omitempty"`
	ParentID    *int64 `json:"parent_id,omitempty"`
}

type CreateTicketResponse struct {
	Ticket *Ticket `json:"ticket"`
}

type UpdateTicketRequest struct {
	ID          int64   `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

type UpdateTicketResponse struct {
	Ticket *Ticket `json:"ticket"`
}

type UpdateTicketStatusRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type UpdateTicketStatusResponse struct {
	Ticket *Ticket `json:"ticket"`
}

type DeleteTicketRequest struct {
	ID int64 `json:"id"`
}

type DeleteTicketResponse struct{}
