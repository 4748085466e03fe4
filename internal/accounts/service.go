package accounts

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backoffice-backend/internal/domain"
)

// Service owns account CRUD. Balances are touched here only on create (the
// opening balance) and on cascading delete; every later balance change goes
// through the ledger service.
type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Name           string
	Type           domain.AccountType
	OpeningBalance decimal.Decimal
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Account, error) {
	account := domain.Account{
		Name:    in.Name,
		Type:    in.Type,
		Balance: in.OpeningBalance,
	}
	if err := s.DB.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Account, error) {
	var account domain.Account
	if err := s.DB.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	err := s.DB.WithContext(ctx).Order("name ASC").Find(&accounts).Error
	return accounts, err
}

// Rename updates the display name only. The type is immutable after creation:
// changing it would silently re-sign every existing posting.
func (s *Service) Rename(ctx context.Context, id uint, name string) (*domain.Account, error) {
	var account domain.Account
	if err := s.DB.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	account.Name = name
	if err := s.DB.WithContext(ctx).Save(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// Delete removes an account and every transaction posted against it, in that
// order, inside one database transaction. No balance work is needed: the
// aggregate disappears with its children. A missing id returns (false, nil).
func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account domain.Account
		if err := tx.First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&domain.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&account).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}
