package db

import (
	"time"

	"github.com/shopspring/decimal"
)

type portfolioModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"uniqueIndex;not null"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
}

func (portfolioModel) TableName() string { return "portfolios" }

type assetModel struct {
	ID            string          `gorm:"primaryKey;size:36"`
	PortfolioID   string          `gorm:"index;not null"`
	Symbol        string          `gorm:"not null"`
	Type          string          `gorm:"not null"`
	Quantity      decimal.Decimal `gorm:"type:numeric;not null"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt     time.Time
}

func (assetModel) TableName() string { return "assets" }

type alertModel struct {
	ID          string          `gorm:"primaryKey;size:36"`
	AssetID     string          `gorm:"index;not null"`
	Direction   string          `gorm:"not null"`
	TargetPrice decimal.Decimal `gorm:"type:numeric;not null"`
	Active      bool            `gorm:"index;not null"`
	TriggeredAt *time.Time
	CreatedAt   time.Time
}

func (alertModel) TableName() string { return "price_alerts" }

type notificationModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index;not null"`
	Title     string `gorm:"not null"`
	Message   string `gorm:"not null"`
	Read      bool   `gorm:"not null"`
	CreatedAt time.Time
}

func (notificationModel) TableName() string { return "notifications" }

type pushSubscriptionModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index;not null"`
	Endpoint  string `gorm:"uniqueIndex;not null"`
	P256dh    string `gorm:"not null"`
	Auth      string `gorm:"not null"`
	CreatedAt time.Time
}

func (pushSubscriptionModel) TableName() string { return "push_subscriptions" }
