package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type AssetStore interface {
	Create(ctx context.Context, userID string, asset *Asset) error
	ListByUser(ctx context.Context, userID string) ([]Asset, error)
	GetOwned(ctx context.Context, userID, assetID string) (*Asset, error)
}

type AlertStore interface {
	Create(ctx context.Context, alert *PriceAlert) error
	ListByUser(ctx context.Context, userID string) ([]PriceAlert, error)
	// ListActive returns every active alert joined to its symbol, asset
	// type and owning user. Inactive alerts never appear here.
	ListActive(ctx context.Context) ([]ActiveAlert, error)
	// MarkTriggered flips an alert from active to triggered. It reports
	// whether this call performed the transition: false means the alert
	// was already triggered or has been deleted, both of which callers
	// treat as already resolved.
	MarkTriggered(ctx context.Context, alertID string) (bool, error)
	Delete(ctx context.Context, userID, alertID string) error
}

type NotificationStore interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}

type PushSubscriptionStore interface {
	Save(ctx context.Context, sub *PushSubscription) error
	ListByUser(ctx context.Context, userID string) ([]PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}
