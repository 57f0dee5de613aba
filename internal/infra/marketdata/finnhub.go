package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FinnhubClient fetches equity quotes from the Finnhub REST API.
type FinnhubClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func NewFinnhubClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *FinnhubClient {
	return &FinnhubClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type finnhubQuote struct {
	Current       json.Number `json:"c"`
	ChangePercent json.Number `json:"dp"`
}

func (c *FinnhubClient) Quote(ctx context.Context, symbol string) (domain.Quote, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s&token=%s", c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Quote{}, err
	}

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warn("finnhub request failed", zap.String("symbol", symbol), zap.Error(err))
		return domain.Quote{}, err
	}
	defer response.Body.Close()

	c.logger.Debug(
		"finnhub request complete",
		zap.String("symbol", symbol),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return domain.Quote{}, fmt.Errorf("finnhub: status %d", response.StatusCode)
	}

	var payload finnhubQuote
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return domain.Quote{}, fmt.Errorf("finnhub: decode: %w", err)
	}

	price, err := decimal.NewFromString(payload.Current.String())
	if err != nil {
		return domain.Quote{}, fmt.Errorf("finnhub: bad price %q: %w", payload.Current.String(), err)
	}
	// Finnhub reports 0 for symbols it does not know.
	if price.Sign() <= 0 {
		return domain.Quote{}, fmt.Errorf("finnhub: unknown symbol %s: %w", symbol, domain.ErrPriceUnavailable)
	}

	changePercent := decimal.Zero
	if payload.ChangePercent != "" {
		if dp, err := decimal.NewFromString(payload.ChangePercent.String()); err == nil {
			changePercent = dp
		}
	}

	return domain.Quote{
		Symbol:        symbol,
		AssetType:     domain.AssetTypeStock,
		Price:         price,
		ChangePercent: changePercent,
		FetchedAt:     time.Now().UTC(),
	}, nil
}
