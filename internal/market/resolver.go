package market

import "context"

type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

// MultiSourceResolver implements PriceResolver by trying sources in order and
// falling back to the sentinel price when none yields a usable quote.
type MultiSourceResolver struct {
	sources []PriceSource
	logger  Logger
}

func NewMultiSourceResolver(sources []PriceSource, logger Logger) *MultiSourceResolver {
	return &MultiSourceResolver{
		sources: sources,
		logger:  logger,
	}
}

// ResolvePriceUsd implements PriceResolver.
func (r *MultiSourceResolver) ResolvePriceUsd(ctx context.Context, tokenContractAddress string) float64 {
	for _, source := range r.sources {
		price, err := source.ResolvePriceUsd(ctx, tokenContractAddress)
		if err == nil && price > 0 {
			r.logger.Info("resolved price", "source", source.Name(), "token", tokenContractAddress, "price", price)
			return price
		}
		r.logger.Error("failed to resolve price", "source", source.Name(), "error", err)
	}

	r.logger.Info("no usable price, using sentinel", "token", tokenContractAddress)
	return SentinelPriceUsd
}
