// Package graph projects a ticket set onto nodes and parent -> child edges.
package graph

import "github.com/kazz187/ticketboard/internal/ticket"

type EdgeType string

const EdgeHierarchy EdgeType = "hierarchy"

type Node struct {
	ID       int64           `json:"id"`
	Label    string          `json:"label"`
	Type     ticket.Type     `json:"type"`
	Status   ticket.Status   `json:"status"`
	Priority ticket.Priority `json:"priority"`
}

type Edge struct {
	Source int64    `json:"source"`
	Target int64    `json:"target"`
	Type   EdgeType `json:"type"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Build returns one node per ticket and one hierarchy edge per ticket whose
// parent is in the set. Nodes and edges follow input order; edges pointing at
// a missing parent or at the ticket itself are dropped.
func Build(tickets []ticket.Ticket) *Graph {
	present := make(map[int64]struct{}, len(tickets))
	for _, t := range tickets {
		present[t.ID] = struct{}{}
	}

	g := &Graph{
		Nodes: make([]Node, 0, len(tickets)),
		Edges: []Edge{},
	}
	for _, t := range tickets {
		g.Nodes = append(g.Nodes, Node{
			ID:       t.ID,
			Label:    t.Title,
			Type:     t.Type,
			Status:   t.Status,
			Priority: t.Priority,
		})
		if t.ParentID == nil || *t.ParentID == t.ID {
			continue
		}
		if _, ok := present[*t.ParentID]; !ok {
			continue
		}
		g.Edges = append(g.Edges, Edge{Source: *t.ParentID, Target: t.ID, Type: EdgeHierarchy})
	}
	return g
}

// Children returns the IDs of the direct children of id, in edge order.
func (g *Graph) Children(id int64) []int64 {
	var out []int64
	for _, e := range g.Edges {
		if e.Source == id {
			out = append(out, e.Target)
		}
	}
	return out
}

// Roots returns the nodes that are not the target of any edge.
func (g *Graph) Roots() []Node {
	targets := make(map[int64]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		targets[e.Target] = struct{}{}
	}
	var out []Node
	for _, n := range g.Nodes {
		if _, ok := targets[n.ID]; !ok {
			out = append(out, n)
		}
	}
	return out
}

func (g *Graph) Node(id int64) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
