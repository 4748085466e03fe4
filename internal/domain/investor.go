package domain

import "time"

// Investor is referenced by zero or more portfolios and cannot be removed
// while any portfolio still points at it.
type Investor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"uniqueIndex" json:"email"`
	RiskProfile string    `gorm:"type:varchar(20)" json:"risk_profile"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
