package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusProcessed = "processed"
	WithdrawalStatusFailed    = "failed"

	DefaultWithdrawalCurrency = "BTC"
)

// Withdrawal is the audit row of a payout request. Status only moves
// pending->processed or pending->failed, never back. A failed settlement
// always refunds the reserved amount.
type Withdrawal struct {
	bun.BaseModel `bun:"table:withdrawal"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Reference     string     `bun:"reference" json:"reference"`
	UserID        string     `bun:"user_id" json:"user_id"`
	Amount        float64    `bun:"amount" json:"amount"`
	Currency      string     `bun:"currency" json:"currency"`
	WalletAddress string     `bun:"wallet_address" json:"wallet_address"`
	Status        string     `bun:"status" json:"status"`
	TransactionID *string    `bun:"transaction_id" json:"transaction_id"`
	RequestedAt   time.Time  `bun:"requested_at,default:current_timestamp" json:"requested_at"`
	SettledAt     *time.Time `bun:"settled_at" json:"settled_at"`
}
