package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedSource puts a short-lived redis cache in front of a price source so
// closely spaced passes (and the API) reuse one upstream fetch per symbol.
// Cache trouble is never fatal: on any redis error the lookup falls through
// to the underlying source.
type CachedSource struct {
	next   domain.PriceSource
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedSource(next domain.PriceSource, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedSource {
	return &CachedSource{next: next, client: client, ttl: ttl, logger: logger}
}

func quoteKey(symbol string, assetType domain.AssetType) string {
	return fmt.Sprintf("quote:%s:%s", assetType, symbol)
}

func (s *CachedSource) Quote(ctx context.Context, symbol string, assetType domain.AssetType) (domain.Quote, error) {
	key := quoteKey(symbol, assetType)

	data, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		var quote domain.Quote
		if err := json.Unmarshal(data, &quote); err == nil {
			return quote, nil
		}
		s.logger.Debug("quote cache entry corrupt", zap.String("key", key))
	} else if err != redis.Nil {
		s.logger.Debug("quote cache read failed", zap.String("key", key), zap.Error(err))
	}

	quote, err := s.next.Quote(ctx, symbol, assetType)
	if err != nil {
		return domain.Quote{}, err
	}

	if data, err := json.Marshal(quote); err == nil {
		if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
			s.logger.Debug("quote cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return quote, nil
}
