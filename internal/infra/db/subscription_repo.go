package db

import (
	"context"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PushSubscriptionRepository struct {
	db *gorm.DB
}

func NewPushSubscriptionRepository(db *gorm.DB) *PushSubscriptionRepository {
	return &PushSubscriptionRepository{db: db}
}

// Save upserts on the endpoint so a browser re-registering the same
// subscription does not accumulate rows.
func (r *PushSubscriptionRepository) Save(ctx context.Context, sub *domain.PushSubscription) error {
	model := pushSubscriptionModel{
		ID:       uuid.NewString(),
		UserID:   sub.UserID,
		Endpoint: sub.Endpoint,
		P256dh:   sub.P256dh,
		Auth:     sub.Auth,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth"}),
		}).
		Create(&model).Error
	if err != nil {
		return err
	}

	sub.ID = model.ID
	sub.CreatedAt = model.CreatedAt
	return nil
}

func (r *PushSubscriptionRepository) ListByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error) {
	var models []pushSubscriptionModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&models).Error; err != nil {
		return nil, err
	}

	subs := make([]domain.PushSubscription, 0, len(models))
	for _, model := range models {
		subs = append(subs, domain.PushSubscription{
			ID:        model.ID,
			UserID:    model.UserID,
			Endpoint:  model.Endpoint,
			P256dh:    model.P256dh,
			Auth:      model.Auth,
			CreatedAt: model.CreatedAt,
		})
	}
	return subs, nil
}

func (r *PushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	return r.db.WithContext(ctx).Where("endpoint = ?", endpoint).Delete(&pushSubscriptionModel{}).Error
}
