package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type providerClient interface {
	Quote(ctx context.Context, symbol string) (domain.Quote, error)
}

// Router is the price source the evaluator talks to. It dispatches to the
// equities or crypto provider on asset type, keeps upstream calls under a
// shared rate limit, and bounds every fetch with its own timeout. Any
// failure comes back as ErrPriceUnavailable so a broken fetch can never be
// mistaken for a real price.
type Router struct {
	stocks  providerClient
	crypto  providerClient
	limiter *rate.Limiter
	timeout time.Duration
	logger  *zap.Logger
}

func NewRouter(stocks, crypto providerClient, limiter *rate.Limiter, timeout time.Duration, logger *zap.Logger) *Router {
	return &Router{
		stocks:  stocks,
		crypto:  crypto,
		limiter: limiter,
		timeout: timeout,
		logger:  logger,
	}
}

func (r *Router) Quote(ctx context.Context, symbol string, assetType domain.AssetType) (domain.Quote, error) {
	if symbol == "" {
		return domain.Quote{}, fmt.Errorf("empty symbol: %w", domain.ErrPriceUnavailable)
	}

	var provider providerClient
	switch assetType {
	case domain.AssetTypeStock:
		provider = r.stocks
	case domain.AssetTypeCrypto:
		provider = r.crypto
	default:
		return domain.Quote{}, fmt.Errorf("unknown asset type %q: %w", assetType, domain.ErrPriceUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.limiter.Wait(ctx); err != nil {
		return domain.Quote{}, fmt.Errorf("rate limit wait for %s: %w", symbol, domain.ErrPriceUnavailable)
	}

	quote, err := provider.Quote(ctx, symbol)
	if err != nil {
		r.logger.Warn("quote fetch failed",
			zap.String("symbol", symbol),
			zap.String("asset_type", string(assetType)),
			zap.Error(err),
		)
		return domain.Quote{}, fmt.Errorf("quote %s/%s: %v: %w", assetType, symbol, err, domain.ErrPriceUnavailable)
	}

	quote.AssetType = assetType
	return quote, nil
}
