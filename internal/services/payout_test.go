package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spigot/internal/interfaces"
)

func newTestPayoutClient(t *testing.T, handler http.HandlerFunc) *PayoutClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewPayoutClient(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("new payout client: %v", err)
	}
	return client
}

func TestPayoutClientSendSuccess(t *testing.T) {
	client := newTestPayoutClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/payouts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck
		w.Write([]byte(`{"success":true,"transaction_id":"tx-123"}`))
	})

	result, err := client.Send(context.Background(), &interfaces.PayoutRequest{
		Amount:        5,
		WalletAddress: "bc1qtestaddress",
		Currency:      "BTC",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if result.TransactionID != "tx-123" {
		t.Errorf("expected tx-123, got %s", result.TransactionID)
	}
}

func TestPayoutClientSendDeclined(t *testing.T) {
	client := newTestPayoutClient(t, func(w http.ResponseWriter, r *http.Request) {
		//nolint:errcheck
		w.Write([]byte(`{"success":false,"reason":"address blacklisted"}`))
	})

	_, err := client.Send(context.Background(), &interfaces.PayoutRequest{Amount: 5, WalletAddress: "x", Currency: "BTC"})
	if !errors.Is(err, ErrPayoutDeclined) {
		t.Fatalf("expected declined error, got %v", err)
	}
}

func TestPayoutClientSendNon2xx(t *testing.T) {
	client := newTestPayoutClient(t, func(w http.ResponseWriter, r *http.Request) {
		// a body that parses as success must still be a failure on 5xx
		w.WriteHeader(http.StatusBadGateway)
		//nolint:errcheck
		w.Write([]byte(`{"success":true,"transaction_id":"tx-999"}`))
	})

	_, err := client.Send(context.Background(), &interfaces.PayoutRequest{Amount: 5, WalletAddress: "x", Currency: "BTC"})
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestPayoutClientSendMalformedBody(t *testing.T) {
	client := newTestPayoutClient(t, func(w http.ResponseWriter, r *http.Request) {
		//nolint:errcheck
		w.Write([]byte(`not-json`))
	})

	_, err := client.Send(context.Background(), &interfaces.PayoutRequest{Amount: 5, WalletAddress: "x", Currency: "BTC"})
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
}

func TestPayoutClientSendMissingTransactionID(t *testing.T) {
	client := newTestPayoutClient(t, func(w http.ResponseWriter, r *http.Request) {
		//nolint:errcheck
		w.Write([]byte(`{"success":true}`))
	})

	_, err := client.Send(context.Background(), &interfaces.PayoutRequest{Amount: 5, WalletAddress: "x", Currency: "BTC"})
	if err == nil {
		t.Fatal("expected error for missing transaction id")
	}
}

func TestPayoutClientRetryCarriesReference(t *testing.T) {
	var bodies []map[string]any
	client := newTestPayoutClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		bodies = append(bodies, body)

		// first attempt fails after the provider may have paid; the
		// retry must be deduplicable by reference
		if len(bodies) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		//nolint:errcheck
		w.Write([]byte(`{"success":true,"transaction_id":"tx-1"}`))
	})

	result, err := client.Send(context.Background(), &interfaces.PayoutRequest{
		Reference:     "a2c9d0a8-3633-4a25-8a06-a6b9a9d78a1d",
		Amount:        5,
		WalletAddress: "bc1qtestaddress",
		Currency:      "BTC",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if result.TransactionID != "tx-1" {
		t.Errorf("expected tx-1, got %s", result.TransactionID)
	}
	if len(bodies) != 2 {
		t.Fatalf("expected 2 provider calls, got %d", len(bodies))
	}
	for i, body := range bodies {
		if body["reference"] != "a2c9d0a8-3633-4a25-8a06-a6b9a9d78a1d" {
			t.Errorf("call %d missing idempotency reference: %v", i+1, body)
		}
	}
}

func TestPayoutClientSendTimeout(t *testing.T) {
	client := newTestPayoutClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		//nolint:errcheck
		w.Write([]byte(`{"success":true,"transaction_id":"tx-123"}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Send(ctx, &interfaces.PayoutRequest{Amount: 5, WalletAddress: "x", Currency: "BTC"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
}
