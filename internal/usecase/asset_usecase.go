package usecase

import (
	"context"
	"strings"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

type AssetUsecase struct {
	assets domain.AssetStore
}

func NewAssetUsecase(assets domain.AssetStore) *AssetUsecase {
	return &AssetUsecase{assets: assets}
}

func (u *AssetUsecase) AddAsset(ctx context.Context, userID, symbol, assetType, quantity, purchasePrice string) (*domain.Asset, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}

	typ := domain.AssetType(strings.ToLower(strings.TrimSpace(assetType)))
	if !typ.Valid() {
		return nil, ErrInvalidAssetType
	}

	qty, err := decimal.NewFromString(strings.TrimSpace(quantity))
	if err != nil || qty.Sign() < 0 {
		return nil, ErrInvalidQuantity
	}

	price, err := decimal.NewFromString(strings.TrimSpace(purchasePrice))
	if err != nil || price.Sign() < 0 {
		return nil, ErrInvalidTargetPrice
	}

	asset := &domain.Asset{
		Symbol:        symbol,
		Type:          typ,
		Quantity:      qty,
		PurchasePrice: price,
	}
	if err := u.assets.Create(ctx, userID, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (u *AssetUsecase) ListAssets(ctx context.Context, userID string) ([]domain.Asset, error) {
	return u.assets.ListByUser(ctx, userID)
}
