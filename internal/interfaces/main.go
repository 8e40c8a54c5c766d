package interfaces

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

// Reference is the caller-minted idempotency key: the provider must treat
// two requests with the same reference as one payout, so client retries
// after a transient failure cannot pay twice.
type PayoutRequest struct {
	Reference     string  `json:"reference"`
	Amount        float64 `json:"amount"`
	WalletAddress string  `json:"wallet_address"`
	Currency      string  `json:"currency"`
}

type PayoutResult struct {
	TransactionID string `json:"transaction_id"`
}

// PayoutGateway is the single outbound collaborator: an opaque, fallible,
// synchronous remote call. Anything but a well-formed success is an error.
type PayoutGateway interface {
	Send(ctx context.Context, req *PayoutRequest) (*PayoutResult, error)
}
