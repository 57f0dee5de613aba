package config

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	HTTPAddr   string `env:"HTTP_ADDR,default=:8080"`
	AuthSecret string `env:"AUTH_SECRET,required"`
	LogLevel   string `env:"LOG_LEVEL,default=info"`

	DBHost            string        `env:"DB_HOST,required"`
	DBPort            int           `env:"DB_PORT,default=5432"`
	DBUser            string        `env:"DB_USER,required"`
	DBPassword        string        `env:"DB_PASSWORD,required"`
	DBName            string        `env:"DB_NAME,required"`
	DBSSLMode         string        `env:"DB_SSLMODE,default=disable"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`

	EvalInterval      time.Duration `env:"ALERT_EVAL_INTERVAL,default=1m"`
	PriceFetchTimeout time.Duration `env:"PRICE_FETCH_TIMEOUT,default=10s"`
	PriceRatePerSec   float64       `env:"PRICE_RATE_PER_SEC,default=5"`
	PriceRateBurst    int           `env:"PRICE_RATE_BURST,default=10"`

	FinnhubBaseURL   string `env:"FINNHUB_BASE_URL,default=https://finnhub.io/api/v1"`
	FinnhubAPIKey    string `env:"FINNHUB_API_KEY"`
	CoinGeckoBaseURL string `env:"COINGECKO_BASE_URL,default=https://api.coingecko.com"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	QuoteCacheTTL time.Duration `env:"QUOTE_CACHE_TTL,default=30s"`

	VAPIDPublicKey  string `env:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `env:"VAPID_PRIVATE_KEY"`
	PushContact     string `env:"PUSH_CONTACT,default=mailto:admin@fintrack.app"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`

	CORSOrigins []string `env:"CORS_ORIGINS,default=http://localhost:3000"`
}

func Load(ctx context.Context) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// PushEnabled reports whether web-push delivery is configured.
func (c Config) PushEnabled() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

// TelegramEnabled reports whether the ops mirror channel is configured.
func (c Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}
