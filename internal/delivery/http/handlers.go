package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"github.com/Chahit/FinTrack-sub001/internal/usecase"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handlers struct {
	assets        *usecase.AssetUsecase
	alerts        *usecase.AlertUsecase
	notifications *usecase.NotificationUsecase
	logger        *zap.Logger
}

func NewHandlers(assets *usecase.AssetUsecase, alerts *usecase.AlertUsecase, notifications *usecase.NotificationUsecase, logger *zap.Logger) *Handlers {
	return &Handlers{assets: assets, alerts: alerts, notifications: notifications, logger: logger}
}

type assetResponse struct {
	ID            string    `json:"id"`
	Symbol        string    `json:"symbol"`
	Type          string    `json:"type"`
	Quantity      string    `json:"quantity"`
	PurchasePrice string    `json:"purchasePrice"`
	CreatedAt     time.Time `json:"createdAt"`
}

type alertResponse struct {
	ID          string     `json:"id"`
	AssetID     string     `json:"assetId"`
	Direction   string     `json:"direction"`
	TargetPrice string     `json:"targetPrice"`
	Active      bool       `json:"active"`
	TriggeredAt *time.Time `json:"triggeredAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handlers) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Symbol        string `json:"symbol"`
		Type          string `json:"type"`
		Quantity      string `json:"quantity"`
		PurchasePrice string `json:"purchasePrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	asset, err := h.assets.AddAsset(r.Context(), UserID(r.Context()), body.Symbol, body.Type, body.Quantity, body.PurchasePrice)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, mapAsset(*asset))
}

func (h *Handlers) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assets.ListAssets(r.Context(), UserID(r.Context()))
	if err != nil {
		h.handleError(w, err)
		return
	}

	out := make([]assetResponse, 0, len(assets))
	for _, asset := range assets {
		out = append(out, mapAsset(asset))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) CreateAlert(w http.ResponseWriter, r *http.Request) {
	assetID := mux.Vars(r)["id"]

	var body struct {
		Direction   string `json:"direction"`
		TargetPrice string `json:"targetPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	alert, err := h.alerts.CreateAlert(r.Context(), UserID(r.Context()), assetID, body.Direction, body.TargetPrice)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, mapAlert(*alert))
}

func (h *Handlers) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alerts.ListAlerts(r.Context(), UserID(r.Context()))
	if err != nil {
		h.handleError(w, err)
		return
	}

	out := make([]alertResponse, 0, len(alerts))
	for _, alert := range alerts {
		out = append(out, mapAlert(alert))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	alertID := mux.Vars(r)["id"]
	if err := h.alerts.DeleteAlert(r.Context(), UserID(r.Context()), alertID); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := h.notifications.List(r.Context(), UserID(r.Context()), unreadOnly)
	if err != nil {
		h.handleError(w, err)
		return
	}

	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, notificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	notificationID := mux.Vars(r)["id"]
	if err := h.notifications.MarkRead(r.Context(), UserID(r.Context()), notificationID); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) SavePushSubscription(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Endpoint string `json:"endpoint"`
		Keys     struct {
			P256dh string `json:"p256dh"`
			Auth   string `json:"auth"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sub, err := h.notifications.SaveSubscription(r.Context(), UserID(r.Context()), body.Endpoint, body.Keys.P256dh, body.Keys.Auth)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"id": sub.ID})
}

func (h *Handlers) DeletePushSubscription(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Endpoint string `json:"endpoint"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.notifications.DeleteSubscription(r.Context(), body.Endpoint); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func mapAsset(asset domain.Asset) assetResponse {
	return assetResponse{
		ID:            asset.ID,
		Symbol:        asset.Symbol,
		Type:          string(asset.Type),
		Quantity:      asset.Quantity.String(),
		PurchasePrice: asset.PurchasePrice.String(),
		CreatedAt:     asset.CreatedAt,
	}
}

func mapAlert(alert domain.PriceAlert) alertResponse {
	return alertResponse{
		ID:          alert.ID,
		AssetID:     alert.AssetID,
		Direction:   string(alert.Direction),
		TargetPrice: alert.TargetPrice.String(),
		Active:      alert.Active,
		TriggeredAt: alert.TriggeredAt,
		CreatedAt:   alert.CreatedAt,
	}
}

func (h *Handlers) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrAssetNotFound),
		errors.Is(err, usecase.ErrAlertNotFound),
		errors.Is(err, usecase.ErrNotificationNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrInvalidSymbol),
		errors.Is(err, usecase.ErrInvalidAssetType),
		errors.Is(err, usecase.ErrInvalidDirection),
		errors.Is(err, usecase.ErrInvalidTargetPrice),
		errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInvalidSubscription):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
