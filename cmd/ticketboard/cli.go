package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kazz187/ticketboard/internal/board"
	"github.com/kazz187/ticketboard/internal/client"
	"github.com/kazz187/ticketboard/internal/render"
	"github.com/kazz187/ticketboard/internal/ticket"
	"github.com/kazz187/ticketboard/pkg/cerr"
)

var errHierarchy = errors.New("hierarchy violations found")

type cli struct {
	out      io.Writer
	client   *client.TicketClient
	renderer *render.Renderer
}

func newCLI(out io.Writer) *cli {
	return &cli{
		out:      out,
		client:   client.NewTicketClient(*serverURL, client.WithAPIKey(*apiKey)),
		renderer: render.New(!*noColor),
	}
}

func (c *cli) openBoard(ctx context.Context) (*board.Board, error) {
	b := board.New(c.client,
		board.WithWriteTimeout(*writeTimeout),
		board.WithRefreshTimeout(*refreshTimeout),
		board.WithGraphSource(c.client),
	)
	if err := b.Open(ctx, *projectID); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func (c *cli) showBoard(ctx context.Context) error {
	b, err := c.openBoard(ctx)
	if err != nil {
		return err
	}
	defer b.Close()
	return c.renderer.Board(c.out, b.Columns())
}

// parseTarget accepts a status name, "#<id>" / "card:<id>" for a card, or
// "none" for a drop outside the board.
func parseTarget(s string) (board.DropTarget, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "none":
		return board.NoTarget, nil
	case strings.HasPrefix(s, "#"), strings.HasPrefix(s, "card:"):
		raw := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "card:")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return board.DropTarget{}, fmt.Errorf("invalid card target %q", s)
		}
		return board.CardTarget(id), nil
	default:
		st := ticket.Status(s)
		if !st.Valid() {
			return board.DropTarget{}, fmt.Errorf("unknown column %q", s)
		}
		return board.ColumnTarget(st), nil
	}
}

func (c *cli) move(ctx context.Context, id int64, target string, via []string) error {
	drop, err := parseTarget(target)
	if err != nil {
		return err
	}
	hovers := make([]board.DropTarget, 0, len(via))
	for _, v := range via {
		h, err := parseTarget(v)
		if err != nil {
			return err
		}
		hovers = append(hovers, h)
	}

	b, err := c.openBoard(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	before := render.BoardText(b.Columns())
	drag := b.Drag()
	if err := drag.Start(id); err != nil {
		return err
	}
	for _, h := range hovers {
		if err := drag.Hover(h); err != nil {
			return err
		}
	}
	m, err := drag.Drop(ctx, drop)
	if err != nil {
		return err
	}
	if m == nil {
		fmt.Fprintf(c.out, "ticket #%d stays in place\n", id)
		return nil
	}
	writeErr := m.Wait(ctx)
	if err := c.renderer.DiffTo(c.out, before, render.BoardText(b.Columns())); err != nil {
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("move rolled back: %w", writeErr)
	}
	fmt.Fprintf(c.out, "ticket #%d moved to %s\n", id, ticket.ColumnTitle(m.Status))
	return nil
}

func (c *cli) showGraph(ctx context.Context, remote bool) error {
	b, err := c.openBoard(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	g := b.Graph()
	if remote {
		if g, err = b.RemoteGraph(ctx); err != nil {
			return err
		}
	}
	return c.renderer.Graph(c.out, g)
}

func (c *cli) create(ctx context.Context) error {
	params := client.CreateTicketParams{
		ProjectID:   *projectID,
		Title:       *createTitle,
		Description: *createDescription,
		Type:        ticket.Type(*createType),
		Priority:    ticket.Priority(*createPriority),
	}
	if *createParent > 0 {
		params.ParentID = ticket.IDPtr(*createParent)
	}
	t, err := c.client.CreateTicket(ctx, params)
	if err != nil {
		for _, v := range cerr.Violations(err) {
			fmt.Fprintf(c.out, "  %s: %s\n", v.GetRuleId(), v.GetMessage())
		}
		return err
	}
	fmt.Fprintf(c.out, "created #%d %s\n", t.ID, t.Title)
	return nil
}

func (c *cli) check(ctx context.Context) error {
	tickets, err := c.client.FetchTickets(ctx, *projectID)
	if err != nil {
		return err
	}
	vs := ticket.ValidateHierarchy(tickets)
	if err := c.renderer.Violations(c.out, vs); err != nil {
		return err
	}
	if len(vs) > 0 {
		return fmt.Errorf("%w: %d", errHierarchy, len(vs))
	}
	return nil
}
