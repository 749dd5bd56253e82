package model

import "time"

// CartLine is a single cart entry. The unit price is captured when the line
// is added; later catalog changes never touch existing lines. Repeated adds
// of the same item produce separate lines.
type CartLine struct {
	ID        int64
	UserID    int64
	Item      string
	Quantity  int32
	UnitPrice int64
	AddedAt   time.Time
}

// LineTotal returns quantity times the captured unit price.
func (l CartLine) LineTotal() int64 {
	return int64(l.Quantity) * l.UnitPrice
}
