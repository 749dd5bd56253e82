package dto

import "time"

// BroadcastRequest carries the announcement text.
type BroadcastRequest struct {
	Text string `json:"text"`
}

// BroadcastResponse reports how many subscribers were queued.
type BroadcastResponse struct {
	Queued int `json:"queued"`
}

// SubscriberResponse describes one broadcast opt-in.
type SubscriberResponse struct {
	UserID       int64     `json:"user_id"`
	Handle       string    `json:"handle"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// UnsubscriptionResponse describes one opt-out event.
type UnsubscriptionResponse struct {
	UserID         int64     `json:"user_id"`
	Handle         string    `json:"handle"`
	UnsubscribedAt time.Time `json:"unsubscribed_at"`
}

// ReferralResponse describes one recorded referral source.
type ReferralResponse struct {
	UserID       int64     `json:"user_id"`
	Handle       string    `json:"handle"`
	Source       string    `json:"source"`
	RegisteredAt time.Time `json:"registered_at"`
}
