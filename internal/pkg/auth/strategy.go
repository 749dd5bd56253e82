package auth

import "time"

// Strategy issues and verifies admin session tokens. The token payload
// carries the Telegram chat ID of the authenticated owner.
type Strategy interface {
	IssueToken(chatID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tune token issuance.
type Options struct {
	TTL time.Duration
}
