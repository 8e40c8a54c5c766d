package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserBalance is the single ledger row per user. The balance column is
// only ever mutated through guarded atomic SQL increments, never through
// read-modify-write from the application.
type UserBalance struct {
	bun.BaseModel `bun:"table:user_balance"`
	UserID        string    `bun:"user_id,pk" json:"user_id"`
	Balance       float64   `bun:"balance" json:"balance"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
}

type BalanceSummary struct {
	Balance       float64    `json:"balance"`
	LastClaimTime *time.Time `json:"lastClaimTime"`
}
