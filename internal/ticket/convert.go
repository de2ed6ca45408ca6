package ticket

import ticketboardv1 "github.com/kazz187/ticketboard/internal/api/ticketboardv1"

func ToAPI(t *Ticket) *ticketboardv1.Ticket {
	c := t.Clone()
	return &ticketboardv1.Ticket{
		ID:          c.ID,
		ProjectID:   c.ProjectID,
		Title:       c.Title,
		Description: c.Description,
		Type:        string(c.Type),
		ParentID:    c.ParentID,
		Status:      string(c.Status),
		Priority:    string(c.Priority),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToAPIList(ts []*Ticket) []*ticketboardv1.Ticket {
	out := make([]*ticketboardv1.Ticket, len(ts))
	for i, t := range ts {
		out[i] = ToAPI(t)
	}
	return out
}

// FromAPI keeps unrecognized enum values as-is; the board groups an unknown
// status under open.
func FromAPI(m *ticketboardv1.Ticket) Ticket {
	t := Ticket{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		Type:        Type(m.Type),
		ParentID:    m.ParentID,
		Status:      Status(m.Status),
		Priority:    Priority(m.Priority),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	return t.Clone()
}

func createRequestFromAPI(m *ticketboardv1.CreateTicketRequest) CreateRequest {
	return CreateRequest{
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		Type:        Type(m.Type),
		Priority:    Priority(m.Priority),
		ParentID:    m.ParentID,
	}
}

func updateRequestFromAPI(m *ticketboardv1.UpdateTicketRequest) UpdateRequest {
	req := UpdateRequest{
		Title:       m.Title,
		Description: m.Description,
	}
	if m.Status != nil {
		s := Status(*m.Status)
		req.Status = &s
	}
	if m.Priority != nil {
		p := Priority(*m.Priority)
		req.Priority = &p
	}
	return req
}
