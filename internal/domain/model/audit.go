package model

import "time"

// ActivityEntry records a significant user action for the owner's audit log.
type ActivityEntry struct {
	ID       int64
	UserID   int64
	Handle   string
	Action   string
	LoggedAt time.Time
}

// Referral records which link brought a first-seen user to the bot.
type Referral struct {
	UserID       int64
	Handle       string
	Source       string
	RegisteredAt time.Time
}
