package usecase

import (
	"context"
	"fmt"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"go.uber.org/zap"
)

type Notifier interface {
	Send(ctx context.Context, userID, title, body string) error
}

// Dispatcher consumes a newly met alert. The trigger state transition comes
// first: once MarkTriggered reports the flip, the alert can never fire
// again, regardless of how delivery goes. Delivery after that point is best
// effort only.
type Dispatcher struct {
	alerts        domain.AlertStore
	notifications domain.NotificationStore
	notifier      Notifier
	logger        *zap.Logger
}

func NewDispatcher(alerts domain.AlertStore, notifications domain.NotificationStore, notifier Notifier, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{alerts: alerts, notifications: notifications, notifier: notifier, logger: logger}
}

func (d *Dispatcher) Dispatch(ctx context.Context, active domain.ActiveAlert, quote domain.Quote) {
	fired, err := d.alerts.MarkTriggered(ctx, active.Alert.ID)
	if err != nil {
		d.logger.Error("failed to mark alert triggered",
			zap.String("alert_id", active.Alert.ID),
			zap.Error(err),
		)
		return
	}
	if !fired {
		// Another pass or a user delete got here first.
		d.logger.Debug("alert already resolved", zap.String("alert_id", active.Alert.ID))
		return
	}

	verb := "risen above"
	if active.Alert.Direction == domain.DirectionBelow {
		verb = "fallen below"
	}
	title := fmt.Sprintf("Price alert: %s", active.Symbol)
	message := fmt.Sprintf("%s has %s %s (now %s)",
		active.Symbol, verb, active.Alert.TargetPrice.String(), quote.Price.String())

	record := &domain.Notification{
		UserID:  active.UserID,
		Title:   title,
		Message: message,
	}
	if err := d.notifications.Create(ctx, record); err != nil {
		d.logger.Warn("failed to persist notification",
			zap.String("alert_id", active.Alert.ID),
			zap.String("user_id", active.UserID),
			zap.Error(err),
		)
	}

	if d.notifier != nil {
		if err := d.notifier.Send(ctx, active.UserID, title, message); err != nil {
			d.logger.Warn("alert delivery failed",
				zap.String("alert_id", active.Alert.ID),
				zap.String("user_id", active.UserID),
				zap.Error(err),
			)
		}
	}

	d.logger.Info("alert triggered",
		zap.String("alert_id", active.Alert.ID),
		zap.String("user_id", active.UserID),
		zap.String("symbol", active.Symbol),
		zap.String("direction", string(active.Alert.Direction)),
		zap.String("target", active.Alert.TargetPrice.String()),
		zap.String("price", quote.Price.String()),
	)
}
