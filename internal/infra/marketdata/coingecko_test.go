package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"go.uber.org/zap"
)

func TestCoinGeckoQuote(t *testing.T) {
	t.Run("maps_symbol_to_coin_id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("ids"); got != "bitcoin" {
				t.Errorf("expected ids=bitcoin, got %s", got)
			}
			_, _ = w.Write([]byte(`{"bitcoin": {"usd": 31000.5, "usd_24h_change": -2.13}}`))
		}))
		defer server.Close()

		client := NewCoinGeckoClient(server.URL, time.Second, zap.NewNop())
		quote, err := client.Quote(context.Background(), "BTC")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if quote.Price.String() != "31000.5" {
			t.Errorf("wrong price: %s", quote.Price)
		}
		if quote.ChangePercent.String() != "-2.13" {
			t.Errorf("wrong change percent: %s", quote.ChangePercent)
		}
		if quote.Symbol != "BTC" {
			t.Errorf("wrong symbol: %s", quote.Symbol)
		}
	})

	t.Run("unmapped_symbol_falls_back_to_lowercase", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("ids"); got != "pepe" {
				t.Errorf("expected ids=pepe, got %s", got)
			}
			_, _ = w.Write([]byte(`{"pepe": {"usd": 0.0000012}}`))
		}))
		defer server.Close()

		client := NewCoinGeckoClient(server.URL, time.Second, zap.NewNop())
		if _, err := client.Quote(context.Background(), "PEPE"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing_entry_reports_unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewCoinGeckoClient(server.URL, time.Second, zap.NewNop())
		_, err := client.Quote(context.Background(), "NOPE")
		if !errors.Is(err, domain.ErrPriceUnavailable) {
			t.Errorf("expected ErrPriceUnavailable, got %v", err)
		}
	})

	t.Run("upstream_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewCoinGeckoClient(server.URL, time.Second, zap.NewNop())
		if _, err := client.Quote(context.Background(), "BTC"); err == nil {
			t.Error("expected error for 500 status")
		}
	})
}
