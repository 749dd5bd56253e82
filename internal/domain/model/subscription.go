package model

import "time"

// Subscriber is a user opted into owner broadcasts.
type Subscriber struct {
	UserID       int64
	Handle       string
	SubscribedAt time.Time
}

// Unsubscription is an append-only audit record. It is never read back by
// bot logic, only exposed to the owner.
type Unsubscription struct {
	ID             int64
	UserID         int64
	Handle         string
	UnsubscribedAt time.Time
}
