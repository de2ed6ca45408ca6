package ticket

import "fmt"

// IsValidParent reports whether a ticket of type child may have a parent of
// type parent. TypeNone as parent means "no parent": always allowed for
// tasks and subtasks and the only option for epics.
func IsValidParent(child, parent Type) bool {
	switch child {
	case TypeEpic:
		return parent == TypeNone
	case TypeTask:
		return parent == TypeNone || parent == TypeEpic
	case TypeSubtask:
		return parent == TypeNone || parent == TypeTask
	default:
		return false
	}
}

// ParentType returns the only type a ticket of type child may hang under,
// or TypeNone for epics and unknown types.
func ParentType(child Type) Type {
	switch child {
	case TypeTask:
		return TypeEpic
	case TypeSubtask:
		return TypeTask
	default:
		return TypeNone
	}
}

type ViolationKind string

const (
	ViolationEpicWithParent    ViolationKind = "epic_with_parent"
	ViolationInvalidParentType ViolationKind = "invalid_parent_type"
	ViolationDanglingParent    ViolationKind = "dangling_parent"
	ViolationCrossProject      ViolationKind = "cross_project_parent"
	ViolationSelfParent        ViolationKind = "self_parent"
)

type Violation struct {
	Kind     ViolationKind
	TicketID int64
	ParentID int64
}

func (v Violation) String() string {
	switch v.Kind {
	case ViolationEpicWithParent:
		return fmt.Sprintf("#%d: epic has parent #%d", v.TicketID, v.ParentID)
	case ViolationInvalidParentType:
		return fmt.Sprintf("#%d: parent #%d has an invalid type", v.TicketID, v.ParentID)
	case ViolationDanglingParent:
		return fmt.Sprintf("#%d: parent #%d does not exist", v.TicketID, v.ParentID)
	case ViolationCrossProject:
		return fmt.Sprintf("#%d: parent #%d belongs to another project", v.TicketID, v.ParentID)
	case ViolationSelfParent:
		return fmt.Sprintf("#%d: ticket is its own parent", v.TicketID)
	default:
		return fmt.Sprintf("#%d: %s", v.TicketID, v.Kind)
	}
}

// ValidateHierarchy checks parent links across a ticket set. Violations are
// returned in input order.
func ValidateHierarchy(tickets []Ticket) []Violation {
	byID := make(map[int64]Ticket, len(tickets))
	for _, t := range tickets {
		byID[t.ID] = t
	}

	var out []Violation
	for _, t := range tickets {
		if t.ParentID == nil {
			continue
		}
		pid := *t.ParentID
		v := Violation{TicketID: t.ID, ParentID: pid}
		if t.Type == TypeEpic {
			v.Kind = ViolationEpicWithParent
			out = append(out, v)
			continue
		}
		if pid == t.ID {
			v.Kind = ViolationSelfParent
			out = append(out, v)
			continue
		}
		parent, ok := byID[pid]
		switch {
		case !ok:
			v.Kind = ViolationDanglingParent
		case parent.ProjectID != t.ProjectID:
			v.Kind = ViolationCrossProject
		case !IsValidParent(t.Type, parent.Type):
			v.Kind = ViolationInvalidParentType
		default:
			continue
		}
		out = append(out, v)
	}
	return out
}

// ParentCandidates returns the tickets that may be chosen as parent for a new
// ticket of type child.
func ParentCandidates(tickets []Ticket, child Type) []Ticket {
	want := ParentType(child)
	if want == TypeNone {
		return nil
	}
	var out []Ticket
	for _, t := range tickets {
		if t.Type == want {
			out = append(out, t)
		}
	}
	return out
}
