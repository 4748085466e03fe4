package funds

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"backoffice-backend/internal/domain"
)

// Service owns fund CRUD and the fund side of referential integrity.
type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Name     string
	Strategy string
	Currency string
}

type UpdateInput struct {
	Name     *string
	Strategy *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Fund, error) {
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	fund := domain.Fund{Name: in.Name, Strategy: in.Strategy, Currency: currency}
	if err := s.DB.WithContext(ctx).Create(&fund).Error; err != nil {
		return nil, err
	}
	return &fund, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Fund, error) {
	var fund domain.Fund
	if err := s.DB.WithContext(ctx).First(&fund, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fund, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Fund, error) {
	var list []domain.Fund
	err := s.DB.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*domain.Fund, error) {
	var fund domain.Fund
	if err := s.DB.WithContext(ctx).First(&fund, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if in.Name != nil {
		fund.Name = *in.Name
	}
	if in.Strategy != nil {
		fund.Strategy = *in.Strategy
	}
	if err := s.DB.WithContext(ctx).Save(&fund).Error; err != nil {
		return nil, err
	}
	return &fund, nil
}

// Delete removes a fund only when no portfolio references it. A referenced
// fund fails with ErrFundInUse naming the dependent count and nothing is
// applied; a missing id returns (false, nil).
func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var fund domain.Fund
		if err := tx.First(&fund, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		var dependents int64
		if err := tx.Model(&domain.Portfolio{}).Where("fund_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return fmt.Errorf("%w: %d portfolio(s) depend on it", ErrFundInUse, dependents)
		}
		if err := tx.Delete(&fund).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}
