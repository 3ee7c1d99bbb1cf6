// Package chain submits signed vault operations to the transaction relayer
// and reports their terminal outcome. The relayer is the only component that
// talks to the chain; the rest of the application treats submission as a
// single blocking call that either confirms or fails.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Operation names understood by the relayer.
const (
	OpLockup = "lockup"
	OpRedeem = "redeem"
	OpClaim  = "claim"
)

// Request describes one vault operation to execute on chain.
type Request struct {
	Operation   string          `json:"operation"`
	Account     string          `json:"account"`
	NoteAddress string          `json:"noteAddress"`
	TokenID     int64           `json:"tokenId,omitempty"`
	Amount      decimal.Decimal `json:"amount,omitempty"`
	ChainID     int             `json:"chainId"`
}

// Result is the relayer's terminal outcome for a confirmed submission.
type Result struct {
	TxHash      string `json:"txHash"`
	BlockNumber int64  `json:"blockNumber"`
}

// Submitter executes a vault operation and blocks until the relayer reports
// a terminal outcome. A nil error means the operation is confirmed on chain.
type Submitter interface {
	Submit(ctx context.Context, req Request) (*Result, error)
}

// RelayerClient is the HTTP Submitter backed by the relayer service.
type RelayerClient struct {
	baseURL string
	chainID int
	client  *http.Client
}

// NewRelayerClient builds a Submitter for the relayer at baseURL. timeout
// caps a whole submission on the client side; zero means no client timer,
// leaving the per-request context to bound the call. The relayer holds the
// connection open until the transaction is mined, so any cap here must
// exceed worst-case confirmation time or confirmed transactions will be
// reported as failures.
func NewRelayerClient(baseURL string, chainID int, timeout time.Duration) *RelayerClient {
	return &RelayerClient{
		baseURL: baseURL,
		chainID: chainID,
		client:  &http.Client{Timeout: timeout},
	}
}

type relayerError struct {
	Error string `json:"error"`
}

// Submit posts the operation to the relayer and waits for confirmation.
// The relayer holds the connection open until the transaction is mined, so
// the caller's context bounds the whole round trip.
func (c *RelayerClient) Submit(ctx context.Context, req Request) (*Result, error) {
	req.ChainID = c.chainID

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling relayer request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/submit", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating relayer request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling relayer: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading relayer response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var relErr relayerError
		if err := json.Unmarshal(body, &relErr); err == nil && relErr.Error != "" {
			return nil, fmt.Errorf("relayer rejected %s: %s", req.Operation, relErr.Error)
		}
		return nil, fmt.Errorf("relayer rejected %s: status %d", req.Operation, resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing relayer response: %w", err)
	}
	if result.TxHash == "" {
		return nil, fmt.Errorf("relayer returned no transaction hash for %s", req.Operation)
	}

	return &result, nil
}
