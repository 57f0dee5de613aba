package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeCrypto AssetType = "crypto"
)

func (t AssetType) Valid() bool {
	return t == AssetTypeStock || t == AssetTypeCrypto
}

type Portfolio struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
}

type Asset struct {
	ID            string
	PortfolioID   string
	Symbol        string
	Type          AssetType
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	CreatedAt     time.Time
}
