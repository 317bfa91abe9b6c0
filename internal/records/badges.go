package records

import (
	"claimsview/internal/query"
)

// UnreadCount counts records of a snapshot whose status equals unreadStatus.
// It backs the unread badge that the poller keeps fresh.
func UnreadCount(schema query.Schema, snap Snapshot, unreadStatus string) int {
	if unreadStatus == "" {
		return 0
	}
	return len(schema.Filter(snap.Records, query.Criteria{Status: unreadStatus}))
}
