package db

import (
	"context"
	"time"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.PriceAlert) error {
	model := alertModel{
		ID:          uuid.NewString(),
		AssetID:     alert.AssetID,
		Direction:   string(alert.Direction),
		TargetPrice: alert.TargetPrice,
		Active:      true,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}

	alert.ID = model.ID
	alert.Active = model.Active
	alert.CreatedAt = model.CreatedAt
	return nil
}

func (r *AlertRepository) ListByUser(ctx context.Context, userID string) ([]domain.PriceAlert, error) {
	var models []alertModel
	err := r.db.WithContext(ctx).
		Select("price_alerts.*").
		Joins("JOIN assets ON assets.id = price_alerts.asset_id").
		Joins("JOIN portfolios ON portfolios.id = assets.portfolio_id").
		Where("portfolios.user_id = ?", userID).
		Order("price_alerts.created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]domain.PriceAlert, 0, len(models))
	for _, model := range models {
		alerts = append(alerts, mapAlertToDomain(model))
	}
	return alerts, nil
}

type activeAlertRow struct {
	ID          string
	AssetID     string
	Direction   string
	TargetPrice decimal.Decimal
	Active      bool
	TriggeredAt *time.Time
	CreatedAt   time.Time
	Symbol      string
	AssetType   string
	UserID      string
}

func (r *AlertRepository) ListActive(ctx context.Context) ([]domain.ActiveAlert, error) {
	var rows []activeAlertRow
	err := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Select("price_alerts.*, assets.symbol AS symbol, assets.type AS asset_type, portfolios.user_id AS user_id").
		Joins("JOIN assets ON assets.id = price_alerts.asset_id").
		Joins("JOIN portfolios ON portfolios.id = assets.portfolio_id").
		Where("price_alerts.active = ?", true).
		Order("price_alerts.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]domain.ActiveAlert, 0, len(rows))
	for _, row := range rows {
		alerts = append(alerts, domain.ActiveAlert{
			Alert: domain.PriceAlert{
				ID:          row.ID,
				AssetID:     row.AssetID,
				Direction:   domain.AlertDirection(row.Direction),
				TargetPrice: row.TargetPrice,
				Active:      row.Active,
				TriggeredAt: row.TriggeredAt,
				CreatedAt:   row.CreatedAt,
			},
			Symbol:    row.Symbol,
			AssetType: domain.AssetType(row.AssetType),
			UserID:    row.UserID,
		})
	}
	return alerts, nil
}

// MarkTriggered performs the terminal active -> triggered transition. The
// conditional update makes it a no-op for alerts already triggered or
// deleted, which is what keeps a concurrent pass or a racing user delete
// from double-firing.
func (r *AlertRepository) MarkTriggered(ctx context.Context, alertID string) (bool, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("id = ? AND active = ?", alertID, true).
		Updates(map[string]interface{}{"active": false, "triggered_at": now})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *AlertRepository) Delete(ctx context.Context, userID, alertID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND asset_id IN (?)", alertID,
			r.db.Model(&assetModel{}).
				Select("assets.id").
				Joins("JOIN portfolios ON portfolios.id = assets.portfolio_id").
				Where("portfolios.user_id = ?", userID),
		).
		Delete(&alertModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapAlertToDomain(model alertModel) domain.PriceAlert {
	return domain.PriceAlert{
		ID:          model.ID,
		AssetID:     model.AssetID,
		Direction:   domain.AlertDirection(model.Direction),
		TargetPrice: model.TargetPrice,
		Active:      model.Active,
		TriggeredAt: model.TriggeredAt,
		CreatedAt:   model.CreatedAt,
	}
}
