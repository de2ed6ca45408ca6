package ticket

import "time"

type Type string

const (
	// TypeNone stands for "no parent" when passed to IsValidParent.
	TypeNone    Type = ""
	TypeEpic    Type = "epic"
	TypeTask    Type = "task"
	TypeSubtask Type = "subtask"
)

func (t Type) Valid() bool {
	switch t {
	case TypeEpic, TypeTask, TypeSubtask:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Column is the board column the status is displayed in. Unrecognized and
// empty statuses are shown under open.
func (s Status) Column() Status {
	if s.Valid() {
		return s
	}
	return StatusOpen
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Ticket struct {
	ID          int64     `yaml:"id"`
	ProjectID   string    `yaml:"project_id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Type        Type      `yaml:"type"`
	ParentID    *int64    `yaml:"parent_id,omitempty"`
	Status      Status    `yaml:"status"`
	Priority    Priority  `yaml:"priority"`
	CreatedAt   time.Time `yaml:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

// Clone returns a deep copy; ParentID is not shared with t.
func (t Ticket) Clone() Ticket {
	if t.ParentID != nil {
		p := *t.ParentID
		t.ParentID = &p
	}
	return t
}

func (t Ticket) HasParent() bool {
	return t.ParentID != nil
}

// ParentIDOrZero returns 0 for a ticket without a parent.
func (t Ticket) ParentIDOrZero() int64 {
	if t.ParentID == nil {
		return 0
	}
	return *t.ParentID
}

// IDPtr is a helper for building optional parent references.
func IDPtr(v int64) *int64 {
	return &v
}
