package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_SECRET", "secret")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "fintrack")
	t.Setenv("DB_PASSWORD", "fintrack")
	t.Setenv("DB_NAME", "fintrack")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d", cfg.DBPort)
	}
	if cfg.EvalInterval != time.Minute {
		t.Errorf("EvalInterval = %s", cfg.EvalInterval)
	}
	if cfg.PriceFetchTimeout != 10*time.Second {
		t.Errorf("PriceFetchTimeout = %s", cfg.PriceFetchTimeout)
	}
	if cfg.QuoteCacheTTL != 30*time.Second {
		t.Errorf("QuoteCacheTTL = %s", cfg.QuoteCacheTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("AUTH_SECRET", "placeholder")
	os.Unsetenv("AUTH_SECRET")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "fintrack")
	t.Setenv("DB_PASSWORD", "fintrack")
	t.Setenv("DB_NAME", "fintrack")

	if _, err := Load(context.Background()); err == nil {
		t.Fatal("expected error for missing AUTH_SECRET")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALERT_EVAL_INTERVAL", "15s")
	t.Setenv("PRICE_RATE_PER_SEC", "2.5")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EvalInterval != 15*time.Second {
		t.Errorf("EvalInterval = %s", cfg.EvalInterval)
	}
	if cfg.PriceRatePerSec != 2.5 {
		t.Errorf("PriceRatePerSec = %f", cfg.PriceRatePerSec)
	}
}

func TestChannelToggles(t *testing.T) {
	var cfg Config
	if cfg.PushEnabled() {
		t.Error("push should be disabled without VAPID keys")
	}
	if cfg.TelegramEnabled() {
		t.Error("telegram should be disabled without token and chat")
	}

	cfg.VAPIDPublicKey = "pub"
	cfg.VAPIDPrivateKey = "priv"
	if !cfg.PushEnabled() {
		t.Error("push should be enabled with both VAPID keys")
	}

	cfg.TelegramBotToken = "token"
	if cfg.TelegramEnabled() {
		t.Error("telegram needs a chat id too")
	}
	cfg.TelegramChatID = 42
	if !cfg.TelegramEnabled() {
		t.Error("telegram should be enabled with token and chat id")
	}
}
