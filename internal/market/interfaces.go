package market

import "context"

// SentinelPriceUsd is returned when no usable price exists. It is a small
// positive placeholder so downstream USD math never multiplies or divides
// against zero. Price staleness is tolerable; a hard error here is not.
const SentinelPriceUsd = 0.0001

// PriceSource 单一价格来源
type PriceSource interface {
	Name() string

	// ResolvePriceUsd returns the token's USD price, or an error when this
	// source has no usable quote.
	ResolvePriceUsd(ctx context.Context, tokenContractAddress string) (float64, error)
}

// PriceResolver resolves a token's USD price. It never fails: when every
// source comes up empty the sentinel price is returned.
type PriceResolver interface {
	ResolvePriceUsd(ctx context.Context, tokenContractAddress string) float64
}
