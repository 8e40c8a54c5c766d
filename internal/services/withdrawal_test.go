package services

import (
	"context"
	"testing"
)

// Both post-payout writes, the refund and the mark-processed update, run on
// a settlement context. Once the provider has resolved the call, the
// bookkeeping must not be cancellable by a client disconnect: a paid row
// left pending would be refunded by the reconciler.
func TestSettlementContextDetachedAndBounded(t *testing.T) {
	requestCtx, cancel := context.WithCancel(context.Background())
	cancel()

	if requestCtx.Err() == nil {
		t.Fatal("expected cancelled request context")
	}

	ctx, done := settlementContext()
	defer done()

	if err := ctx.Err(); err != nil {
		t.Fatalf("settlement context must be live regardless of the request: %v", err)
	}
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("settlement context must be bounded")
	}
}
