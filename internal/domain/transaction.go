package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Side is the posting direction of a transaction. Whether a side increases or
// decreases the arithmetic balance depends on the account type (see the
// ledger package's rule table), so the names follow bookkeeping convention
// rather than polarity.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// Sides is the closed set accepted at the request boundary.
var Sides = []Side{SideDebit, SideCredit}

// Transaction is a single-sided posting against one account. Rows are
// created, amended, and removed only through the ledger service, which keeps
// the owning account's balance in step within the same database transaction.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	AccountID   uint            `gorm:"not null;index" json:"account_id"`
	Side        Side            `gorm:"type:varchar(10);not null" json:"side"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Date        datatypes.Date  `gorm:"not null" json:"date"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
