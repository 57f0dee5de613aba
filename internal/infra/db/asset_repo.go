package db

import (
	"context"
	"errors"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create stores an asset under the user's portfolio, creating the default
// portfolio on first use.
func (r *AssetRepository) Create(ctx context.Context, userID string, asset *domain.Asset) error {
	portfolio, err := r.ensurePortfolio(ctx, userID)
	if err != nil {
		return err
	}

	model := assetModel{
		ID:            uuid.NewString(),
		PortfolioID:   portfolio.ID,
		Symbol:        asset.Symbol,
		Type:          string(asset.Type),
		Quantity:      asset.Quantity,
		PurchasePrice: asset.PurchasePrice,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}

	asset.ID = model.ID
	asset.PortfolioID = model.PortfolioID
	asset.CreatedAt = model.CreatedAt
	return nil
}

func (r *AssetRepository) ListByUser(ctx context.Context, userID string) ([]domain.Asset, error) {
	var models []assetModel
	err := r.db.WithContext(ctx).
		Select("assets.*").
		Joins("JOIN portfolios ON portfolios.id = assets.portfolio_id").
		Where("portfolios.user_id = ?", userID).
		Order("assets.created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	assets := make([]domain.Asset, 0, len(models))
	for _, model := range models {
		assets = append(assets, mapAssetToDomain(model))
	}
	return assets, nil
}

func (r *AssetRepository) GetOwned(ctx context.Context, userID, assetID string) (*domain.Asset, error) {
	var model assetModel
	err := r.db.WithContext(ctx).
		Select("assets.*").
		Joins("JOIN portfolios ON portfolios.id = assets.portfolio_id").
		Where("assets.id = ? AND portfolios.user_id = ?", assetID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	asset := mapAssetToDomain(model)
	return &asset, nil
}

func (r *AssetRepository) ensurePortfolio(ctx context.Context, userID string) (portfolioModel, error) {
	var model portfolioModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error
	if err == nil {
		return model, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return portfolioModel{}, err
	}

	model = portfolioModel{ID: uuid.NewString(), UserID: userID, Name: "Main"}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return portfolioModel{}, err
	}
	return model, nil
}

func mapAssetToDomain(model assetModel) domain.Asset {
	return domain.Asset{
		ID:            model.ID,
		PortfolioID:   model.PortfolioID,
		Symbol:        model.Symbol,
		Type:          domain.AssetType(model.Type),
		Quantity:      model.Quantity,
		PurchasePrice: model.PurchasePrice,
		CreatedAt:     model.CreatedAt,
	}
}
