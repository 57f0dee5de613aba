package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrAssetNotFound        = errors.New("asset not found")
	ErrAlertNotFound        = errors.New("alert not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidSymbol        = errors.New("invalid symbol")
	ErrInvalidAssetType     = errors.New("invalid asset type")
	ErrInvalidDirection     = errors.New("invalid direction")
	ErrInvalidTargetPrice   = errors.New("invalid target price")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidSubscription  = errors.New("invalid subscription")
)

type AlertUsecase struct {
	assets domain.AssetStore
	alerts domain.AlertStore
}

func NewAlertUsecase(assets domain.AssetStore, alerts domain.AlertStore) *AlertUsecase {
	return &AlertUsecase{assets: assets, alerts: alerts}
}

func (u *AlertUsecase) CreateAlert(ctx context.Context, userID, assetID, direction, targetPrice string) (*domain.PriceAlert, error) {
	dir := domain.AlertDirection(strings.ToUpper(strings.TrimSpace(direction)))
	if !dir.Valid() {
		return nil, ErrInvalidDirection
	}

	target, err := decimal.NewFromString(strings.TrimSpace(targetPrice))
	if err != nil || target.Sign() <= 0 {
		return nil, ErrInvalidTargetPrice
	}

	asset, err := u.assets.GetOwned(ctx, userID, assetID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	alert := &domain.PriceAlert{
		AssetID:     asset.ID,
		Direction:   dir,
		TargetPrice: target,
		Active:      true,
	}
	if err := u.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (u *AlertUsecase) ListAlerts(ctx context.Context, userID string) ([]domain.PriceAlert, error) {
	return u.alerts.ListByUser(ctx, userID)
}

func (u *AlertUsecase) DeleteAlert(ctx context.Context, userID, alertID string) error {
	if err := u.alerts.Delete(ctx, userID, alertID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrAlertNotFound
		}
		return err
	}
	return nil
}
