package portfolios

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backoffice-backend/internal/domain"
)

// Service owns portfolio CRUD and the portfolio side of referential
// integrity. TotalValue is never written here: it belongs to the assets
// service's rollup.
type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Name        string
	InvestorID  uint
	FundID      uint
	CashBalance decimal.Decimal
}

type UpdateInput struct {
	Name        *string
	CashBalance *decimal.Decimal
	ReturnRate  *decimal.Decimal
}

// Create checks both parents exist before inserting; unknown ids are
// precondition failures naming the missing id.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Portfolio, error) {
	var created domain.Portfolio
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var investor domain.Investor
		if err := tx.First(&investor, in.InvestorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrInvestorNotFound, in.InvestorID)
			}
			return err
		}
		var fund domain.Fund
		if err := tx.First(&fund, in.FundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrFundNotFound, in.FundID)
			}
			return err
		}
		created = domain.Portfolio{
			Name:        in.Name,
			InvestorID:  in.InvestorID,
			FundID:      in.FundID,
			CashBalance: in.CashBalance,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Portfolio, error) {
	var portfolio domain.Portfolio
	if err := s.DB.WithContext(ctx).First(&portfolio, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &portfolio, nil
}

// ListFilter narrows List; zero fields match everything.
type ListFilter struct {
	FundID     uint
	InvestorID uint
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]domain.Portfolio, error) {
	q := s.DB.WithContext(ctx).Order("name ASC")
	if filter.FundID != 0 {
		q = q.Where("fund_id = ?", filter.FundID)
	}
	if filter.InvestorID != 0 {
		q = q.Where("investor_id = ?", filter.InvestorID)
	}
	var list []domain.Portfolio
	err := q.Find(&list).Error
	return list, err
}

// Update amends name, cash balance or return rate; (nil, nil) when absent.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*domain.Portfolio, error) {
	var portfolio domain.Portfolio
	if err := s.DB.WithContext(ctx).First(&portfolio, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if in.Name != nil {
		portfolio.Name = *in.Name
	}
	if in.CashBalance != nil {
		portfolio.CashBalance = *in.CashBalance
	}
	if in.ReturnRate != nil {
		portfolio.ReturnRate = *in.ReturnRate
	}
	if err := s.DB.WithContext(ctx).Save(&portfolio).Error; err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// Delete removes a portfolio and every asset assigned to it, assets first,
// inside one database transaction. No rollup work is needed: the aggregate
// disappears with its children. A missing id returns (false, nil).
func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var portfolio domain.Portfolio
		if err := tx.First(&portfolio, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&domain.Asset{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&portfolio).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}
