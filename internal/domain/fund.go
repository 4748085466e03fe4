package domain

import "time"

// Fund is referenced by zero or more portfolios and cannot be removed while
// any portfolio still points at it.
type Fund struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	Strategy  string    `json:"strategy"`
	Currency  string    `gorm:"type:char(3);not null;default:USD" json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
