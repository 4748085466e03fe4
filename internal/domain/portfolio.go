package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio groups assets for one investor inside one fund. TotalValue is the
// rollup of the market values of currently-assigned assets (zero when none)
// and is recomputed by the assets service whenever the set changes.
type Portfolio struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	InvestorID  uint            `gorm:"not null;index" json:"investor_id"`
	FundID      uint            `gorm:"not null;index" json:"fund_id"`
	TotalValue  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_value"`
	CashBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"cash_balance"`
	ReturnRate  decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0" json:"return_rate"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
