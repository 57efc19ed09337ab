package domain

import "time"

// CompositionSession is the server-side replacement for the mobile screen's
// transient editing state: one draft builder plus the catalog snapshot frozen
// when the session was opened. Sessions are persisted between requests and
// expire after an idle TTL.
type CompositionSession struct {
	SessionID string               `json:"sessionID"`
	Builder   *JournalEntryBuilder `json:"builder"`
	Catalog   Catalog              `json:"catalog"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}
