package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"go.uber.org/zap"
)

type pairKey struct {
	Symbol string
	Type   domain.AssetType
}

// Evaluator runs one alert evaluation pass: load active alerts, fetch one
// quote per distinct (symbol, asset type) pair, compare, and hand every
// newly met alert to the dispatcher. A failed quote only silences the
// alerts watching that pair for this pass; they stay active and are
// re-checked on the next one.
type Evaluator struct {
	alerts     domain.AlertStore
	prices     domain.PriceSource
	dispatcher *Dispatcher
	logger     *zap.Logger
}

func NewEvaluator(alerts domain.AlertStore, prices domain.PriceSource, dispatcher *Dispatcher, logger *zap.Logger) *Evaluator {
	return &Evaluator{alerts: alerts, prices: prices, dispatcher: dispatcher, logger: logger}
}

func (e *Evaluator) RunPass(ctx context.Context) error {
	alerts, err := e.alerts.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active alerts: %w", err)
	}
	if len(alerts) == 0 {
		e.logger.Debug("no active alerts")
		return nil
	}

	quotes := e.fetchQuotes(ctx, alerts)

	triggered := 0
	for _, active := range alerts {
		quote, ok := quotes[pairKey{Symbol: active.Symbol, Type: active.AssetType}]
		if !ok {
			continue
		}
		if !active.Alert.Met(quote.Price) {
			continue
		}
		e.dispatcher.Dispatch(ctx, active, quote)
		triggered++
	}

	e.logger.Info("evaluation pass complete",
		zap.Int("alerts", len(alerts)),
		zap.Int("symbols", len(quotes)),
		zap.Int("triggered", triggered),
	)
	return nil
}

// fetchQuotes resolves each distinct (symbol, asset type) pair with exactly
// one concurrent fetch. Pairs whose fetch failed are simply absent from the
// result.
func (e *Evaluator) fetchQuotes(ctx context.Context, alerts []domain.ActiveAlert) map[pairKey]domain.Quote {
	pairs := make(map[pairKey]struct{})
	for _, active := range alerts {
		pairs[pairKey{Symbol: active.Symbol, Type: active.AssetType}] = struct{}{}
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		quotes = make(map[pairKey]domain.Quote, len(pairs))
	)
	for pair := range pairs {
		wg.Add(1)
		go func(pair pairKey) {
			defer wg.Done()
			quote, err := e.prices.Quote(ctx, pair.Symbol, pair.Type)
			if err != nil {
				e.logger.Warn("quote unavailable, skipping symbol this pass",
					zap.String("symbol", pair.Symbol),
					zap.String("asset_type", string(pair.Type)),
					zap.Error(err),
				)
				return
			}
			mu.Lock()
			quotes[pair] = quote
			mu.Unlock()
		}(pair)
	}
	wg.Wait()
	return quotes
}
