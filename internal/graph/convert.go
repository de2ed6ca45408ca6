package graph

import (
	ticketboardv1 "github.com/kazz187/ticketboard/internal/api/ticketboardv1"
	"github.com/kazz187/ticketboard/internal/ticket"
)

func ToAPI(g *Graph) *ticketboardv1.GetTicketGraphResponse {
	resp := &ticketboardv1.GetTicketGraphResponse{
		Nodes: make([]*ticketboardv1.GraphNode, len(g.Nodes)),
		Edges: make([]*ticketboardv1.GraphEdge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		resp.Nodes[i] = &ticketboardv1.GraphNode{
			ID:       n.ID,
			Label:    n.Label,
			Type:     string(n.Type),
			Status:   string(n.Status),
			Priority: string(n.Priority),
		}
	}
	for i, e := range g.Edges {
		resp.Edges[i] = &ticketboardv1.GraphEdge{Source: e.Source, Target: e.Target, Type: string(e.Type)}
	}
	return resp
}

func FromAPI(m *ticketboardv1.GetTicketGraphResponse) *Graph {
	g := &Graph{
		Nodes: make([]Node, 0, len(m.Nodes)),
		Edges: make([]Edge, 0, len(m.Edges)),
	}
	for _, n := range m.Nodes {
		g.Nodes = append(g.Nodes, Node{
			ID:       n.ID,
			Label:    n.Label,
			Type:     ticket.Type(n.Type),
			Status:   ticket.Status(n.Status),
			Priority: ticket.Priority(n.Priority),
		})
	}
	for _, e := range m.Edges {
		g.Edges = append(g.Edges, Edge{Source: e.Source, Target: e.Target, Type: EdgeType(e.Type)})
	}
	return g
}
