package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"backoffice-backend/internal/domain"
)

// Service is the only writer of transaction rows and account balances. Every
// mutation pairs the row change with the balance adjustment inside one
// database transaction, so readers never observe one without the other.
type Service struct {
	DB *gorm.DB
}

// CreateInput carries an already-validated posting request.
type CreateInput struct {
	AccountID   uint
	Side        domain.Side
	Amount      decimal.Decimal
	Date        datatypes.Date
	Description string
	Reference   string
}

// UpdateInput carries a partial amendment; nil fields keep their current
// value. Changing Amount, Side or AccountID triggers the reversal/reapply
// protocol.
type UpdateInput struct {
	AccountID   *uint
	Side        *domain.Side
	Amount      *decimal.Decimal
	Date        *datatypes.Date
	Description *string
	Reference   *string
}

// Create posts a transaction against an account. The row insert and the
// balance adjustment commit together or not at all. An unknown account id is
// a precondition failure wrapping ErrAccountNotFound.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Transaction, error) {
	var created domain.Transaction
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account domain.Account
		if err := tx.First(&account, in.AccountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrAccountNotFound, in.AccountID)
			}
			return err
		}
		delta, err := signedAmount(account.Type, in.Side, in.Amount)
		if err != nil {
			return err
		}
		created = domain.Transaction{
			AccountID:   in.AccountID,
			Side:        in.Side,
			Amount:      in.Amount,
			Date:        in.Date,
			Description: in.Description,
			Reference:   in.Reference,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		return applyDelta(tx, in.AccountID, delta)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update amends a transaction. A missing id returns (nil, nil) with no side
// effects. When amount, side or account change, the old effect is reversed on
// the old account and the new effect applied on the new one, in that order,
// inside a single database transaction. That protocol keeps the balance
// invariant regardless of which of the three changed.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*domain.Transaction, error) {
	var updated *domain.Transaction
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trn domain.Transaction
		if err := tx.First(&trn, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		newAccountID := trn.AccountID
		if in.AccountID != nil {
			newAccountID = *in.AccountID
		}
		newSide := trn.Side
		if in.Side != nil {
			newSide = *in.Side
		}
		newAmount := trn.Amount
		if in.Amount != nil {
			newAmount = *in.Amount
		}

		repost := newAccountID != trn.AccountID || newSide != trn.Side || !newAmount.Equal(trn.Amount)
		if repost {
			var oldAccount domain.Account
			if err := tx.First(&oldAccount, trn.AccountID).Error; err != nil {
				return err
			}
			reversal, err := signedAmount(oldAccount.Type, trn.Side, trn.Amount)
			if err != nil {
				return err
			}
			if err := applyDelta(tx, oldAccount.ID, reversal.Neg()); err != nil {
				return err
			}

			newAccount := oldAccount
			if newAccountID != trn.AccountID {
				if err := tx.First(&newAccount, newAccountID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: id %d", ErrAccountNotFound, newAccountID)
					}
					return err
				}
			}
			delta, err := signedAmount(newAccount.Type, newSide, newAmount)
			if err != nil {
				return err
			}
			if err := applyDelta(tx, newAccount.ID, delta); err != nil {
				return err
			}
		}

		trn.AccountID = newAccountID
		trn.Side = newSide
		trn.Amount = newAmount
		if in.Date != nil {
			trn.Date = *in.Date
		}
		if in.Description != nil {
			trn.Description = *in.Description
		}
		if in.Reference != nil {
			trn.Reference = *in.Reference
		}
		if err := tx.Save(&trn).Error; err != nil {
			return err
		}
		updated = &trn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a transaction, reversing its effect on the owning account in
// the same database transaction. A missing id returns (false, nil).
func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trn domain.Transaction
		if err := tx.First(&trn, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		var account domain.Account
		if err := tx.First(&account, trn.AccountID).Error; err != nil {
			return err
		}
		reversal, err := signedAmount(account.Type, trn.Side, trn.Amount)
		if err != nil {
			return err
		}
		if err := applyDelta(tx, account.ID, reversal.Neg()); err != nil {
			return err
		}
		if err := tx.Delete(&trn).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

// Get is a plain lookup; (nil, nil) when absent.
func (s *Service) Get(ctx context.Context, id uint) (*domain.Transaction, error) {
	var trn domain.Transaction
	if err := s.DB.WithContext(ctx).First(&trn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trn, nil
}

// ListByAccount returns an account's transactions, newest date first.
func (s *Service) ListByAccount(ctx context.Context, accountID uint) ([]domain.Transaction, error) {
	var trns []domain.Transaction
	err := s.DB.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("date DESC, id DESC").
		Find(&trns).Error
	return trns, err
}

// applyDelta pushes the balance adjustment down to a single UPDATE with an
// in-database increment, so concurrent postings against the same account
// cannot lose updates to a stale read-modify-write.
func applyDelta(tx *gorm.DB, accountID uint, delta decimal.Decimal) error {
	return tx.Model(&domain.Account{}).
		Where("id = ?", accountID).
		UpdateColumns(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now(),
		}).Error
}
