package ticketboardv1

type GraphNode struct {
	ID       int64  `json:"id"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

type GraphEdge struct {
	Source int64  `json:"source"`
	Target int64  `json:"target"`
	Type   string `json:"type"`
}

type GetTicketGraphRequest struct {
	ProjectID string `json:"project_id"`
}

type GetTicketGraphResponse struct {
	Nodes []*GraphNode `json:"nodes"`
	Edges []*GraphEdge `json:"edges"`
}
