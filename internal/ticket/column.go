package ticket

import "sort"

// Columns lists the board columns in display order.
var Columns = []Status{StatusOpen, StatusInProgress, StatusReview, StatusDone}

var columnTitles = map[Status]string{
	StatusOpen:       "To Do",
	StatusInProgress: "In Progress",
	StatusReview:     "Review",
	StatusDone:       "Done",
}

func ColumnTitle(s Status) string {
	return columnTitles[s.Column()]
}

type Column struct {
	Status  Status
	Title   string
	Tickets []Ticket
}

// GroupByColumn distributes tickets into the four columns. Every column is
// present even when empty; tickets within a column are ordered by ID.
func GroupByColumn(tickets []Ticket) []Column {
	cols := make([]Column, len(Columns))
	index := make(map[Status]int, len(Columns))
	for i, s := range Columns {
		cols[i] = Column{Status: s, Title: columnTitles[s]}
		index[s] = i
	}
	for _, t := range tickets {
		i := index[t.Status.Column()]
		cols[i].Tickets = append(cols[i].Tickets, t)
	}
	for i := range cols {
		sort.Slice(cols[i].Tickets, func(a, b int) bool {
			return cols[i].Tickets[a].ID < cols[i].Tickets[b].ID
		})
	}
	return cols
}

// Flatten is the inverse of GroupByColumn up to ordering.
func Flatten(cols []Column) []Ticket {
	var out []Ticket
	for _, c := range cols {
		out = append(out, c.Tickets...)
	}
	return out
}
