package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/pearlvault/backend/internal/model"
)

const protocolMetricsQuery = `{
  protocolMetrics(first: 1, orderBy: timestamp, orderDirection: desc) {
    currentAPY
    marketPrice
    treasuryMarketValue
  }
}`

// GraphQLSource fetches the latest protocol metrics from the subgraph.
type GraphQLSource struct {
	url    string
	client *http.Client
}

func NewGraphQLSource(url string, timeout time.Duration) *GraphQLSource {
	return &GraphQLSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type graphQLRequest struct {
	Query string `json:"query"`
}

type protocolMetricsResponse struct {
	Data struct {
		ProtocolMetrics []struct {
			CurrentAPY          decimal.Decimal `json:"currentAPY"`
			MarketPrice         decimal.Decimal `json:"marketPrice"`
			TreasuryMarketValue decimal.Decimal `json:"treasuryMarketValue"`
		} `json:"protocolMetrics"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Fetch queries the subgraph for the newest protocol metrics row.
func (g *GraphQLSource) Fetch(ctx context.Context) (model.MarketSnapshot, error) {
	jsonBody, err := json.Marshal(graphQLRequest{Query: protocolMetricsQuery})
	if err != nil {
		return model.MarketSnapshot{}, fmt.Errorf("marshaling metrics query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return model.MarketSnapshot{}, fmt.Errorf("creating metrics request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return model.MarketSnapshot{}, fmt.Errorf("calling subgraph: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.MarketSnapshot{}, fmt.Errorf("subgraph returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.MarketSnapshot{}, fmt.Errorf("reading subgraph response: %w", err)
	}

	var parsed protocolMetricsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.MarketSnapshot{}, fmt.Errorf("parsing subgraph response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return model.MarketSnapshot{}, fmt.Errorf("subgraph error: %s", parsed.Errors[0].Message)
	}
	if len(parsed.Data.ProtocolMetrics) == 0 {
		return model.MarketSnapshot{}, fmt.Errorf("subgraph returned no protocol metrics")
	}

	m := parsed.Data.ProtocolMetrics[0]
	return model.MarketSnapshot{
		BaseAPY:             m.CurrentAPY,
		MarketPrice:         m.MarketPrice,
		TreasuryMarketValue: m.TreasuryMarketValue,
		FetchedAt:           time.Now().UTC(),
	}, nil
}
