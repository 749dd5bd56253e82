package model

import "time"

// PendingLine is an immutable snapshot of one cart line taken at submit time.
type PendingLine struct {
	Item      string
	Quantity  int32
	UnitPrice int64
	LineTotal int64
}

// PendingOrder is a cart snapshot awaiting the owner's decision. It is
// terminal: approval promotes every line into the order ledger, decline
// removes it outright.
type PendingOrder struct {
	ID        int64
	UserID    int64
	Handle    string
	Lines     []PendingLine
	Total     int64
	CreatedAt time.Time
}
