package notify

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	webpush "github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
)

// WebPushSender delivers a notification to every push subscription the user
// has registered. Endpoints that report themselves gone are pruned so dead
// browser registrations do not pile up.
type WebPushSender struct {
	subs       domain.PushSubscriptionStore
	publicKey  string
	privateKey string
	subscriber string
	logger     *zap.Logger
}

func NewWebPushSender(subs domain.PushSubscriptionStore, publicKey, privateKey, subscriber string, logger *zap.Logger) *WebPushSender {
	return &WebPushSender{
		subs:       subs,
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
		logger:     logger,
	}
}

func (s *WebPushSender) Send(ctx context.Context, userID, title, body string) error {
	subs, err := s.subs.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"title": title, "body": body})
	if err != nil {
		return err
	}

	var lastErr error
	for _, sub := range subs {
		target := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys:     webpush.Keys{P256dh: sub.P256dh, Auth: sub.Auth},
		}
		response, err := webpush.SendNotificationWithContext(ctx, payload, target, &webpush.Options{
			Subscriber:      s.subscriber,
			VAPIDPublicKey:  s.publicKey,
			VAPIDPrivateKey: s.privateKey,
			TTL:             60,
		})
		if err != nil {
			s.logger.Warn("web push send failed",
				zap.String("user_id", userID),
				zap.String("endpoint", sub.Endpoint),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		if response.StatusCode == http.StatusNotFound || response.StatusCode == http.StatusGone {
			s.logger.Info("pruning expired push subscription",
				zap.String("user_id", userID),
				zap.String("endpoint", sub.Endpoint),
			)
			if err := s.subs.DeleteByEndpoint(ctx, sub.Endpoint); err != nil {
				s.logger.Warn("failed to prune push subscription", zap.Error(err))
			}
		}
		response.Body.Close()
	}
	return lastErr
}
