// Package render draws boards and graphs for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/kazz187/ticketboard/internal/graph"
	"github.com/kazz187/ticketboard/internal/ticket"
)

type Renderer struct {
	color bool
}

func New(useColor bool) *Renderer {
	return &Renderer{color: useColor}
}

func (r *Renderer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

var columnColors = map[ticket.Status]color.Attribute{
	ticket.StatusOpen:       color.FgWhite,
	ticket.StatusInProgress: color.FgCyan,
	ticket.StatusReview:     color.FgYellow,
	ticket.StatusDone:       color.FgGreen,
}

var priorityColors = map[ticket.Priority]color.Attribute{
	ticket.PriorityLow:    color.FgHiBlack,
	ticket.PriorityMedium: color.FgBlue,
	ticket.PriorityHigh:   color.FgRed,
}

func (r *Renderer) Board(w io.Writer, cols []ticket.Column) error {
	var b strings.Builder
	for i, col := range cols {
		if i > 0 {
			b.WriteByte('\n')
		}
		r.paint(columnColors[col.Status], color.Bold).Fprintf(&b, "%s (%d)\n", col.Title, len(col.Tickets))
		for _, t := range col.Tickets {
			r.card(&b, t)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) card(w io.Writer, t ticket.Ticket) {
	fmt.Fprintf(w, "  #%d ", t.ID)
	r.paint(priorityColors[t.Priority]).Fprintf(w, "[%s/%s]", t.Type, t.Priority)
	fmt.Fprintf(w, " %s", t.Title)
	if t.ParentID != nil {
		r.paint(color.FgHiBlack).Fprintf(w, " (parent #%d)", *t.ParentID)
	}
	if !t.Status.Valid() {
		r.paint(color.FgMagenta).Fprintf(w, " {status %q}", t.Status)
	}
	fmt.Fprintln(w)
}

// Graph prints the hierarchy as an indented tree starting at the roots.
// Nodes only reachable through a cycle are listed afterwards.
func (r *Renderer) Graph(w io.Writer, g *graph.Graph) error {
	var b strings.Builder
	visited := make(map[int64]bool, len(g.Nodes))
	var walk func(id int64, depth int)
	walk = func(id int64, depth int) {
		if visited[id] {
			return
		}
		visited[id] = true
		n, ok := g.Node(id)
		if !ok {
			return
		}
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&b, "#%d ", n.ID)
		r.paint(columnColors[n.Status.Column()]).Fprintf(&b, "%s", n.Type)
		fmt.Fprintf(&b, " %s [%s]\n", n.Label, n.Status)
		for _, child := range g.Children(id) {
			walk(child, depth+1)
		}
	}
	for _, n := range g.Roots() {
		walk(n.ID, 0)
	}
	for _, n := range g.Nodes {
		walk(n.ID, 0)
	}
	fmt.Fprintf(&b, "%d nodes, %d edges\n", len(g.Nodes), len(g.Edges))
	_, err := io.WriteString(w, b.String())
	return err
}

// BoardText is the uncolored board, used for diffs.
func BoardText(cols []ticket.Column) string {
	var b strings.Builder
	_ = New(false).Board(&b, cols)
	return b.String()
}

// Diff returns a unified diff between two renderings; empty when equal.
func Diff(before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before",
		ToFile:   "after",
		Context:  1,
	})
}

// DiffTo writes a colored Diff to w.
func (r *Renderer) DiffTo(w io.Writer, before, after string) error {
	d, err := Diff(before, after)
	if err != nil {
		return fmt.Errorf("failed to diff boards: %w", err)
	}
	for _, line := range difflib.SplitLines(d) {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			r.paint(color.Bold).Fprint(w, line)
		case strings.HasPrefix(line, "+"):
			r.paint(color.FgGreen).Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			r.paint(color.FgRed).Fprint(w, line)
		case strings.HasPrefix(line, "@@"):
			r.paint(color.FgCyan).Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
	return nil
}

// Violations lists hierarchy problems, one per line.
func (r *Renderer) Violations(w io.Writer, vs []ticket.Violation) error {
	if len(vs) == 0 {
		_, err := r.paint(color.FgGreen).Fprintln(w, "hierarchy ok")
		return err
	}
	for _, v := range vs {
		if _, err := r.paint(color.FgRed).Fprintln(w, v.String()); err != nil {
			return err
		}
	}
	return nil
}
