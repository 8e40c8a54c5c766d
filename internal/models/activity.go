package models

import "time"

const (
	ActivityKindClaim  = "claim"
	ActivityKindPayout = "payout"
)

// ActivityEvent is an entry of the public recent-activity ticker.
type ActivityEvent struct {
	Kind      string    `json:"kind" msgpack:"kind"`
	UserID    string    `json:"user_id" msgpack:"user_id"`
	Amount    float64   `json:"amount" msgpack:"amount"`
	Currency  string    `json:"currency,omitempty" msgpack:"currency"`
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
}
