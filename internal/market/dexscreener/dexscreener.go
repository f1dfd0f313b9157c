// Package dexscreener resolves token prices from the DexScreener pair
// aggregator, picking the deepest pool on the target chain.
package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultTimeout = 10 * time.Second

type Source struct {
	baseURL       string
	targetChainID string
	httpClient    *resty.Client
}

// NewSource creates a DexScreener price source for one chain. A dedicated
// client is used here: one bounded wait per request, no retries.
func NewSource(targetChainID string, timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Source{
		baseURL:       "https://api.dexscreener.com/latest/dex/tokens",
		targetChainID: targetChainID,
		httpClient:    resty.New().SetTimeout(timeout),
	}
}

func (s *Source) Name() string {
	return "dexscreener"
}

type pairsResponse struct {
	Pairs []pair `json:"pairs"`
}

type pair struct {
	ChainID   string `json:"chainId"`
	PriceUsd  string `json:"priceUsd"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
}

// ResolvePriceUsd returns the USD price of the deepest pair on the target
// chain. Ties keep the first-seen pair.
func (s *Source) ResolvePriceUsd(ctx context.Context, tokenContractAddress string) (float64, error) {
	url := fmt.Sprintf("%s/%s", s.baseURL, tokenContractAddress)

	resp, err := s.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result pairsResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	var best *pair
	for i := range result.Pairs {
		p := &result.Pairs[i]
		if p.ChainID != s.targetChainID {
			continue
		}
		if best == nil || p.Liquidity.USD > best.Liquidity.USD {
			best = p
		}
	}
	if best == nil {
		return 0, fmt.Errorf("no pairs on chain %s", s.targetChainID)
	}

	price, err := strconv.ParseFloat(best.PriceUsd, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q: %w", best.PriceUsd, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("non-positive price: %f", price)
	}
	return price, nil
}

// SetBaseURL overrides the API endpoint, for tests.
func (s *Source) SetBaseURL(url string) {
	s.baseURL = url
}
