package domain

import (
	"fmt"
	"time"
)

// HistoryEntry is an append-only audit record of a user action.
// Entries are never mutated or deleted.
type HistoryEntry struct {
	ID        string    `json:"id,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// AddedToListMessage is the audit message written when a title lands in a list.
func AddedToListMessage(titleName string, list List) string {
	return fmt.Sprintf("%s was added to '%s' list.", titleName, list.DisplayName())
}

// RatedMessage is the audit message written when a title is rated.
// The value is the stored rating on the doubled 0-20 scale.
func RatedMessage(titleName string, stored int) string {
	return fmt.Sprintf("%s was rated %d.", titleName, stored)
}
