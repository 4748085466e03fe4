package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// AssetCategory classifies a holding for reporting purposes.
type AssetCategory string

const (
	AssetCategoryEquity     AssetCategory = "equity"
	AssetCategoryBond       AssetCategory = "bond"
	AssetCategoryCash       AssetCategory = "cash"
	AssetCategoryCommodity  AssetCategory = "commodity"
	AssetCategoryRealEstate AssetCategory = "real_estate"
	AssetCategoryOther      AssetCategory = "other"
)

// AssetCategories is the closed set accepted at the request boundary.
var AssetCategories = []AssetCategory{
	AssetCategoryEquity,
	AssetCategoryBond,
	AssetCategoryCash,
	AssetCategoryCommodity,
	AssetCategoryRealEstate,
	AssetCategoryOther,
}

// Asset is a position held inside a portfolio. MarketValue is quantity times
// unit price, rounded to cents; the assets service derives it and recomputes
// the owning portfolio's TotalValue in the same database transaction.
type Asset struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	PortfolioID uint            `gorm:"not null;index" json:"portfolio_id"`
	Symbol      string          `gorm:"not null" json:"symbol"`
	Category    AssetCategory   `gorm:"type:varchar(20);not null" json:"category"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	MarketValue decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"market_value"`
	CostBasis   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"cost_basis"`
	AcquiredOn  datatypes.Date  `json:"acquired_on"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
