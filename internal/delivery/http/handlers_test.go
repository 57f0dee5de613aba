package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"github.com/Chahit/FinTrack-sub001/internal/usecase"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type memAssetStore struct {
	assets map[string]domain.Asset // keyed userID + "/" + assetID
}

func (s *memAssetStore) Create(ctx context.Context, userID string, asset *domain.Asset) error {
	asset.ID = "asset-new"
	asset.CreatedAt = time.Now()
	s.assets[userID+"/"+asset.ID] = *asset
	return nil
}

func (s *memAssetStore) ListByUser(ctx context.Context, userID string) ([]domain.Asset, error) {
	var out []domain.Asset
	for key, asset := range s.assets {
		if strings.HasPrefix(key, userID+"/") {
			out = append(out, asset)
		}
	}
	return out, nil
}

func (s *memAssetStore) GetOwned(ctx context.Context, userID, assetID string) (*domain.Asset, error) {
	asset, ok := s.assets[userID+"/"+assetID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &asset, nil
}

type memAlertStore struct {
	alerts map[string]domain.PriceAlert // keyed userID + "/" + alertID
}

func (s *memAlertStore) Create(ctx context.Context, alert *domain.PriceAlert) error {
	alert.ID = "alert-new"
	alert.CreatedAt = time.Now()
	return nil
}

func (s *memAlertStore) ListByUser(ctx context.Context, userID string) ([]domain.PriceAlert, error) {
	var out []domain.PriceAlert
	for key, alert := range s.alerts {
		if strings.HasPrefix(key, userID+"/") {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (s *memAlertStore) ListActive(ctx context.Context) ([]domain.ActiveAlert, error) {
	return nil, nil
}

func (s *memAlertStore) MarkTriggered(ctx context.Context, alertID string) (bool, error) {
	return false, nil
}

func (s *memAlertStore) Delete(ctx context.Context, userID, alertID string) error {
	key := userID + "/" + alertID
	if _, ok := s.alerts[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.alerts, key)
	return nil
}

type memNotificationStore struct {
	notifications map[string]domain.Notification // keyed userID + "/" + id
}

func (s *memNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	return nil
}

func (s *memNotificationStore) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	var out []domain.Notification
	for key, n := range s.notifications {
		if !strings.HasPrefix(key, userID+"/") {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *memNotificationStore) MarkRead(ctx context.Context, userID, notificationID string) error {
	key := userID + "/" + notificationID
	n, ok := s.notifications[key]
	if !ok {
		return domain.ErrNotFound
	}
	n.Read = true
	s.notifications[key] = n
	return nil
}

type memSubStore struct {
	subs map[string]domain.PushSubscription
}

func (s *memSubStore) Save(ctx context.Context, sub *domain.PushSubscription) error {
	sub.ID = "sub-new"
	s.subs[sub.Endpoint] = *sub
	return nil
}

func (s *memSubStore) ListByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error) {
	return nil, nil
}

func (s *memSubStore) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	delete(s.subs, endpoint)
	return nil
}

func newTestAPI(t *testing.T) (http.Handler, *memAssetStore, *memAlertStore, *memNotificationStore) {
	t.Helper()
	logger := zap.NewNop()
	assets := &memAssetStore{assets: make(map[string]domain.Asset)}
	alerts := &memAlertStore{alerts: make(map[string]domain.PriceAlert)}
	notifications := &memNotificationStore{notifications: make(map[string]domain.Notification)}
	subs := &memSubStore{subs: make(map[string]domain.PushSubscription)}

	handlers := NewHandlers(
		usecase.NewAssetUsecase(assets),
		usecase.NewAlertUsecase(assets, alerts),
		usecase.NewNotificationUsecase(notifications, subs),
		logger,
	)
	router := NewRouter(handlers, NewHub(logger), testSecret, []string{"*"}, logger)
	return router, assets, alerts, notifications
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthzNeedsNoAuth(t *testing.T) {
	router, _, _, _ := newTestAPI(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAPIRejectsAnonymous(t *testing.T) {
	router, _, _, _ := newTestAPI(t)
	rec := doJSON(t, router, http.MethodGet, "/api/alerts", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestCreateAssetEndpoint(t *testing.T) {
	router, _, _, _ := newTestAPI(t)
	token := signToken(t, testSecret, "user-1")

	t.Run("created", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/assets", token,
			`{"symbol":"aapl","type":"stock","quantity":"10","purchasePrice":"150.25"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
		}
		var body assetResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body.Symbol != "AAPL" {
			t.Errorf("symbol not normalized: %s", body.Symbol)
		}
	})

	t.Run("bad_type", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/assets", token,
			`{"symbol":"AAPL","type":"bond","quantity":"10","purchasePrice":"150"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCreateAlertEndpoint(t *testing.T) {
	router, assets, _, _ := newTestAPI(t)
	token := signToken(t, testSecret, "user-1")
	assets.assets["user-1/asset-1"] = domain.Asset{
		ID: "asset-1", Symbol: "BTC", Type: domain.AssetTypeCrypto,
		Quantity: decimal.NewFromInt(1), PurchasePrice: decimal.NewFromInt(20000),
	}

	t.Run("created", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/assets/asset-1/alerts", token,
			`{"direction":"ABOVE","targetPrice":"30000"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("not_owned", func(t *testing.T) {
		otherToken := signToken(t, testSecret, "user-2")
		rec := doJSON(t, router, http.MethodPost, "/api/assets/asset-1/alerts", otherToken,
			`{"direction":"ABOVE","targetPrice":"30000"}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("bad_direction", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/assets/asset-1/alerts", token,
			`{"direction":"UP","targetPrice":"30000"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestDeleteAlertEndpoint(t *testing.T) {
	router, _, alerts, _ := newTestAPI(t)
	token := signToken(t, testSecret, "user-1")
	alerts.alerts["user-1/alert-1"] = domain.PriceAlert{ID: "alert-1"}

	rec := doJSON(t, router, http.MethodDelete, "/api/alerts/alert-1", token, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/alerts/alert-1", token, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestNotificationEndpoints(t *testing.T) {
	router, _, _, notifications := newTestAPI(t)
	token := signToken(t, testSecret, "user-1")
	notifications.notifications["user-1/n-1"] = domain.Notification{
		ID: "n-1", UserID: "user-1", Title: "Price alert: BTC", Message: "crossed",
	}

	rec := doJSON(t, router, http.MethodGet, "/api/notifications", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []notificationResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(list))
	}

	rec = doJSON(t, router, http.MethodPost, "/api/notifications/n-1/read", token, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/notifications/missing/read", token, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestPushSubscriptionEndpoints(t *testing.T) {
	router, _, _, _ := newTestAPI(t)
	token := signToken(t, testSecret, "user-1")

	rec := doJSON(t, router, http.MethodPost, "/api/push/subscriptions", token,
		`{"endpoint":"https://push.example/abc","keys":{"p256dh":"pk","auth":"ak"}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/push/subscriptions", token,
		`{"endpoint":"","keys":{"p256dh":"pk","auth":"ak"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty endpoint, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/push/subscriptions", token,
		`{"endpoint":"https://push.example/abc"}`)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
