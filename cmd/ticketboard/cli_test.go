package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/ticketboard/internal/board"
	"github.com/kazz187/ticketboard/internal/ticket"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in   string
		want board.DropTarget
	}{
		{in: "done", want: board.ColumnTarget(ticket.StatusDone)},
		{in: " in_progress ", want: board.ColumnTarget(ticket.StatusInProgress)},
		{in: "#7", want: board.CardTarget(7)},
		{in: "card:42", want: board.CardTarget(42)},
		{in: "none", want: board.NoTarget},
		{in: "", want: board.NoTarget},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTarget(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, in := range []string{"blocked", "#x", "card:"} {
		_, err := parseTarget(in)
		assert.Error(t, err, in)
	}
}
