package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrPriceUnavailable marks a quote that could not be obtained this cycle:
// upstream error, malformed payload, or unknown symbol. Callers skip the
// affected symbol and retry on the next pass; a failed quote is never a
// zero price.
var ErrPriceUnavailable = errors.New("price unavailable")

// Quote is one price observation for a symbol. It lives for a single
// evaluation pass (or a short cache TTL) and is never persisted.
type Quote struct {
	Symbol        string          `json:"symbol"`
	AssetType     AssetType       `json:"assetType"`
	Price         decimal.Decimal `json:"price"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	FetchedAt     time.Time       `json:"fetchedAt"`
}

type PriceSource interface {
	Quote(ctx context.Context, symbol string, assetType AssetType) (Quote, error)
}
