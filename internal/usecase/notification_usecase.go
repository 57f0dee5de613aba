package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
)

type NotificationUsecase struct {
	notifications domain.NotificationStore
	subs          domain.PushSubscriptionStore
}

func NewNotificationUsecase(notifications domain.NotificationStore, subs domain.PushSubscriptionStore) *NotificationUsecase {
	return &NotificationUsecase{notifications: notifications, subs: subs}
}

func (u *NotificationUsecase) List(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	return u.notifications.ListByUser(ctx, userID, unreadOnly)
}

func (u *NotificationUsecase) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := u.notifications.MarkRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (u *NotificationUsecase) SaveSubscription(ctx context.Context, userID, endpoint, p256dh, auth string) (*domain.PushSubscription, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" || p256dh == "" || auth == "" {
		return nil, ErrInvalidSubscription
	}

	sub := &domain.PushSubscription{
		UserID:   userID,
		Endpoint: endpoint,
		P256dh:   p256dh,
		Auth:     auth,
	}
	if err := u.subs.Save(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (u *NotificationUsecase) DeleteSubscription(ctx context.Context, endpoint string) error {
	if strings.TrimSpace(endpoint) == "" {
		return ErrInvalidSubscription
	}
	return u.subs.DeleteByEndpoint(ctx, endpoint)
}
