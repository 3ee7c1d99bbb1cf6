package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/pearlvault/backend/internal/model"
)

// FallbackSource scrapes the public stats dashboard when the subgraph is
// unavailable. The dashboard renders each headline number in an element
// tagged with a data-metric attribute.
type FallbackSource struct {
	url    string
	client *http.Client
}

func NewFallbackSource(url string, timeout time.Duration) *FallbackSource {
	return &FallbackSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the stats page and extracts APY, price and treasury value.
func (f *FallbackSource) Fetch(ctx context.Context) (model.MarketSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return model.MarketSnapshot{}, fmt.Errorf("creating stats request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return model.MarketSnapshot{}, fmt.Errorf("fetching stats page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.MarketSnapshot{}, fmt.Errorf("stats page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return model.MarketSnapshot{}, fmt.Errorf("parsing stats page: %w", err)
	}

	metrics := make(map[string]decimal.Decimal)
	doc.Find("[data-metric]").Each(func(i int, sel *goquery.Selection) {
		name, _ := sel.Attr("data-metric")
		value, err := parseMetricValue(sel.Text())
		if err != nil {
			return
		}
		metrics[name] = value
	})

	apy, ok := metrics["apy"]
	if !ok {
		return model.MarketSnapshot{}, fmt.Errorf("stats page missing apy metric")
	}
	price, ok := metrics["price"]
	if !ok {
		return model.MarketSnapshot{}, fmt.Errorf("stats page missing price metric")
	}

	return model.MarketSnapshot{
		BaseAPY:             apy,
		MarketPrice:         price,
		TreasuryMarketValue: metrics["treasury"],
		FetchedAt:           time.Now().UTC(),
	}, nil
}

// parseMetricValue strips display formatting ($, %, thousands separators)
// and parses the remaining number.
func parseMetricValue(text string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty metric value")
	}
	return decimal.NewFromString(cleaned)
}
