package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"

	"github.com/kazz187/ticketboard/pkg/clog"
)

var (
	app = kingpin.New("ticketboard", "Drag tickets across board columns from the terminal")

	serverURL      = app.Flag("server", "ticketboard server URL").Default("http://localhost:8080").Envar("TICKETBOARD_SERVER_URL").String()
	apiKey         = app.Flag("api-key", "API key").Envar("TICKETBOARD_API_KEY").String()
	projectID      = app.Flag("project", "Project ID").Short('p').Envar("TICKETBOARD_PROJECT").Required().String()
	writeTimeout   = app.Flag("write-timeout", "Timeout of a single status write").Default("10s").Envar("TICKETBOARD_WRITE_TIMEOUT").Duration()
	refreshTimeout = app.Flag("refresh-timeout", "Timeout of a single ticket fetch").Default("10s").Envar("TICKETBOARD_REFRESH_TIMEOUT").Duration()
	noColor        = app.Flag("no-color", "Disable colored output").Envar("NO_COLOR").Bool()
	logLevel       = app.Flag("log-level", "Log level").Default("warn").Enum("debug", "info", "warn", "error")

	boardCmd = app.Command("board", "Show the board").Default()

	moveCmd    = app.Command("move", "Drag a ticket onto a column or card and show the resulting change")
	moveID     = moveCmd.Arg("id", "Ticket ID").Required().Int64()
	moveTarget = moveCmd.Arg("target", "Drop target: a status (open, in_progress, review, done), #<id> for a card, or none").Required().String()
	moveVia    = moveCmd.Flag("via", "Targets hovered before the drop").Strings()

	graphCmd    = app.Command("graph", "Show the ticket hierarchy")
	graphRemote = graphCmd.Flag("remote", "Use the graph computed by the server").Bool()

	createCmd         = app.Command("create", "Create a ticket")
	createTitle       = createCmd.Arg("title", "Ticket title").Required().String()
	createType        = createCmd.Flag("type", "Ticket type").Default("task").Enum("epic", "task", "subtask")
	createPriority    = createCmd.Flag("priority", "Ticket priority").Default("medium").Enum("low", "medium", "high")
	createParent      = createCmd.Flag("parent", "Parent ticket ID").Int64()
	createDescription = createCmd.Flag("description", "Ticket description").String()

	checkCmd = app.Command("check", "Check parent links of every ticket in the project")
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	var level slog.Level
	_ = level.UnmarshalText([]byte(*logLevel))
	slog.SetDefault(slog.New(clog.NewAttributesHandler(
		clog.NewTextHandler(os.Stderr, clog.WithLevel(level), clog.WithColor(!*noColor)),
	)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli := newCLI(os.Stdout)
	var err error
	switch command {
	case boardCmd.FullCommand():
		err = cli.showBoard(ctx)
	case moveCmd.FullCommand():
		err = cli.move(ctx, *moveID, *moveTarget, *moveVia)
	case graphCmd.FullCommand():
		err = cli.showGraph(ctx, *graphRemote)
	case createCmd.FullCommand():
		err = cli.create(ctx)
	case checkCmd.FullCommand():
		err = cli.check(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
