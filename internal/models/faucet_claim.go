package models

import (
	"time"

	"github.com/uptrace/bun"
)

// FaucetClaim rows are append-only; the last claim for a user is
// max(claimed_at).
type FaucetClaim struct {
	bun.BaseModel `bun:"table:faucet_claim"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        string    `bun:"user_id" json:"user_id"`
	ClaimedAt     time.Time `bun:"claimed_at,default:current_timestamp" json:"claimed_at"`
}
