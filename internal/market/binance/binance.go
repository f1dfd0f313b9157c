// Package binance is the secondary price source for campaign tokens that
// also trade on a CEX pair.
package binance

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adshao/go-binance/v2"
)

type Source struct {
	symbol string
	client *binance.Client
}

// NewSource creates a Binance ticker source for the configured USD-quoted
// symbol. An empty symbol makes the source permanently unusable, which the
// multi-source resolver treats like any other miss.
func NewSource(symbol string) *Source {
	return &Source{
		symbol: symbol,
		client: binance.NewClient("", ""), // public market data needs no keys
	}
}

func (s *Source) Name() string {
	return "binance"
}

// ResolvePriceUsd ignores the contract address: the source is bound to the
// campaign token's CEX symbol at construction time.
func (s *Source) ResolvePriceUsd(ctx context.Context, tokenContractAddress string) (float64, error) {
	if s.symbol == "" {
		return 0, fmt.Errorf("no cex symbol configured")
	}

	prices, err := s.client.NewListPricesService().Symbol(s.symbol).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch ticker: %w", err)
	}
	if len(prices) == 0 {
		return 0, fmt.Errorf("symbol %s not found", s.symbol)
	}

	price, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q: %w", prices[0].Price, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("non-positive price: %f", price)
	}
	return price, nil
}

// SetBaseURL overrides the API endpoint, for tests.
func (s *Source) SetBaseURL(url string) {
	s.client.BaseURL = url
}
