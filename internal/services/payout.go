package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"spigot/internal/interfaces"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
)

var ErrPayoutDeclined = errors.New("payout declined by provider")

type payoutResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason"`
}

// PayoutClient talks to the external payout provider. The call is bounded
// by a per-request timeout and a small constant-backoff retry; non-2xx and
// malformed responses are failures, never success.
type PayoutClient struct {
	baseURL string
	apiKey  string
	client  *httpclient.Client
}

func NewPayoutClient(baseURL, apiKey string) (*PayoutClient, error) {
	if baseURL == "" {
		return nil, errors.New("empty payout base url")
	}

	backoff := heimdall.NewConstantBackoff(500*time.Millisecond, 100*time.Millisecond)
	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(PAYOUT_CALL_TIMEOUT),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
		httpclient.WithRetryCount(2),
	)

	return &PayoutClient{baseURL, apiKey, client}, nil
}

func (p *PayoutClient) Send(ctx context.Context, req *interfaces.PayoutRequest) (*interfaces.PayoutResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/payouts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payout provider returned status %d", resp.StatusCode)
	}

	var parsed payoutResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("malformed payout response: %w", err)
	}

	if !parsed.Success {
		if parsed.Reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrPayoutDeclined, parsed.Reason)
		}
		return nil, ErrPayoutDeclined
	}

	if parsed.TransactionID == "" {
		return nil, errors.New("payout response missing transaction id")
	}

	return &interfaces.PayoutResult{TransactionID: parsed.TransactionID}, nil
}
