package board

import "errors"

var (
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrGestureInProgress = errors.New("drag gesture already in progress")
	ErrNoGesture         = errors.New("no drag gesture in progress")
	ErrInvalidStatus     = errors.New("invalid status")
	// ErrRefreshSuperseded is returned by a refresh whose result was
	// discarded because a commit or a newer refresh started meanwhile.
	ErrRefreshSuperseded = errors.New("refresh superseded")
	ErrNoGraphSource     = errors.New("no remote graph source configured")
	ErrClosed            = errors.New("board closed")
)
