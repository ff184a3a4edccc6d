// Package domain contains the core types for the MediaBase catalog tracker.
package domain

import "fmt"

// List identifies one of the five mutually exclusive per-user title lists.
type List string

// The five lists a title can belong to. A title is a member of at most
// one list at a time.
const (
	ListPlanned   List = "planned"
	ListWatching  List = "watching"
	ListCompleted List = "completed"
	ListOnHold    List = "onhold"
	ListDropped   List = "dropped"
)

// AllLists returns the five lists in their canonical order.
func AllLists() []List {
	return []List{ListPlanned, ListWatching, ListCompleted, ListOnHold, ListDropped}
}

// ParseList converts a string into a List.
func ParseList(s string) (List, error) {
	switch List(s) {
	case ListPlanned, ListWatching, ListCompleted, ListOnHold, ListDropped:
		return List(s), nil
	default:
		return "", fmt.Errorf("unknown list %q", s)
	}
}

// DisplayName returns the human-readable name used in history messages.
func (l List) DisplayName() string {
	switch l {
	case ListPlanned:
		return "Planned"
	case ListWatching:
		return "Watching"
	case ListCompleted:
		return "Completed"
	case ListOnHold:
		return "On Hold"
	case ListDropped:
		return "Dropped"
	default:
		return string(l)
	}
}
