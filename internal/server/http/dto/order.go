package dto

import "time"

// OrderResponse describes one ledger entry.
type OrderResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Handle    string    `json:"handle"`
	Item      string    `json:"item"`
	Quantity  int32     `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	LineTotal int64     `json:"line_total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusUpdateRequest carries the target delivery status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// PendingLineResponse describes one snapshotted cart line.
type PendingLineResponse struct {
	Item      string `json:"item"`
	Quantity  int32  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

// PendingOrderResponse describes an order awaiting the owner's decision.
type PendingOrderResponse struct {
	ID        int64                 `json:"id"`
	UserID    int64                 `json:"user_id"`
	Handle    string                `json:"handle"`
	Lines     []PendingLineResponse `json:"lines"`
	Total     int64                 `json:"total"`
	CreatedAt time.Time             `json:"created_at"`
}
