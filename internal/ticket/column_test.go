package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusColumn(t *testing.T) {
	assert.Equal(t, StatusReview, StatusReview.Column())
	assert.Equal(t, StatusOpen, Status("").Column())
	assert.Equal(t, StatusOpen, Status("blocked").Column())
	assert.Equal(t, "Done", ColumnTitle(StatusDone))
	assert.Equal(t, "To Do", ColumnTitle(Status("blocked")))
}

func TestGroupByColumn(t *testing.T) {
	tickets := []Ticket{
		{ID: 5, Status: StatusDone},
		{ID: 3, Status: StatusOpen},
		{ID: 1, Status: Status("blocked")},
		{ID: 2, Status: StatusInProgress},
		{ID: 4, Status: ""},
	}

	cols := GroupByColumn(tickets)
	require.Len(t, cols, 4)

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
	}
	assert.Equal(t, []string{"To Do", "In Progress", "Review", "Done"}, titles)

	openIDs := []int64{}
	for _, tk := range cols[0].Tickets {
		openIDs = append(openIDs, tk.ID)
	}
	assert.Equal(t, []int64{1, 3, 4}, openIDs)
	assert.Empty(t, cols[2].Tickets)

	// The stored status of an unrecognized value is left alone.
	assert.Equal(t, Status("blocked"), cols[0].Tickets[0].Status)

	assert.ElementsMatch(t, tickets, Flatten(cols))
}

func TestClone(t *testing.T) {
	orig := Ticket{ID: 1, ParentID: IDPtr(9)}
	c := orig.Clone()
	*c.ParentID = 10
	assert.Equal(t, int64(9), *orig.ParentID)
	assert.Equal(t, int64(10), c.ParentIDOrZero())
	assert.Zero(t, Ticket{}.ParentIDOrZero())
}
