package validation

import (
	"errors"
	"strconv"
	"time"

	"backoffice-backend/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var (
	ErrInvalidID       = errors.New("id must be a positive integer")
	ErrInvalidAmount   = errors.New("amount must be a positive decimal")
	ErrInvalidQuantity = errors.New("quantity must be a non-negative decimal")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
)

// ParseID parses a route or body id into the integer key type used by every
// entity table.
func ParseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, ErrInvalidID
	}
	return uint(n), nil
}

// ParseAmount parses a monetary string into an exact decimal. Amounts cross
// the boundary as strings so no float conversion happens before the core.
func ParseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseMoney is ParseAmount without the positivity requirement, for fields
// like opening balances and cost basis that may legitimately be zero.
func ParseMoney(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseQuantity parses a unit quantity (non-negative, four decimal places
// stored).
func ParseQuantity(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidQuantity
	}
	return d, nil
}

// ParseDate parses a YYYY-MM-DD string into the date column type.
func ParseDate(raw string) (datatypes.Date, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return datatypes.Date{}, ErrInvalidDate
	}
	return datatypes.Date(t), nil
}

// IsValidAccountType reports whether s names a member of the closed account
// type set.
func IsValidAccountType(s string) bool {
	for _, t := range domain.AccountTypes {
		if domain.AccountType(s) == t {
			return true
		}
	}
	return false
}

// IsValidSide reports whether s names a posting side.
func IsValidSide(s string) bool {
	for _, side := range domain.Sides {
		if domain.Side(s) == side {
			return true
		}
	}
	return false
}

// IsValidAssetCategory reports whether s names a member of the closed asset
// category set.
func IsValidAssetCategory(s string) bool {
	for _, cat := range domain.AssetCategories {
		if domain.AssetCategory(s) == cat {
			return true
		}
	}
	return false
}
