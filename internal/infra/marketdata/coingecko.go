package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// coinIDs maps common ticker symbols to CoinGecko coin ids. Symbols not
// listed here fall back to their lowercased form, which matches for many
// smaller coins whose id equals the ticker.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"LTC":   "litecoin",
	"LINK":  "chainlink",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
	"BNB":   "binancecoin",
	"USDT":  "tether",
	"USDC":  "usd-coin",
}

// CoinGeckoClient fetches crypto quotes from the CoinGecko simple price API.
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewCoinGeckoClient(baseURL string, timeout time.Duration, logger *zap.Logger) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *CoinGeckoClient) Quote(ctx context.Context, symbol string) (domain.Quote, error) {
	coinID := coinIDs[strings.ToUpper(symbol)]
	if coinID == "" {
		coinID = strings.ToLower(symbol)
	}

	endpoint := fmt.Sprintf(
		"%s/api/v3/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true",
		c.baseURL, url.QueryEscape(coinID),
	)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Quote{}, err
	}

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warn("coingecko request failed", zap.String("symbol", symbol), zap.Error(err))
		return domain.Quote{}, err
	}
	defer response.Body.Close()

	c.logger.Debug(
		"coingecko request complete",
		zap.String("symbol", symbol),
		zap.String("coin_id", coinID),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return domain.Quote{}, fmt.Errorf("coingecko: status %d", response.StatusCode)
	}

	var payload map[string]map[string]json.Number
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return domain.Quote{}, fmt.Errorf("coingecko: decode: %w", err)
	}

	entry, ok := payload[coinID]
	if !ok {
		return domain.Quote{}, fmt.Errorf("coingecko: unknown symbol %s: %w", symbol, domain.ErrPriceUnavailable)
	}

	price, err := decimal.NewFromString(entry["usd"].String())
	if err != nil || price.Sign() <= 0 {
		return domain.Quote{}, fmt.Errorf("coingecko: bad price for %s: %w", symbol, domain.ErrPriceUnavailable)
	}

	changePercent := decimal.Zero
	if raw, ok := entry["usd_24h_change"]; ok {
		if dp, err := decimal.NewFromString(raw.String()); err == nil {
			changePercent = dp
		}
	}

	return domain.Quote{
		Symbol:        symbol,
		AssetType:     domain.AssetTypeCrypto,
		Price:         price,
		ChangePercent: changePercent,
		FetchedAt:     time.Now().UTC(),
	}, nil
}
