package investors

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"backoffice-backend/internal/domain"
)

// Service owns investor CRUD and the investor side of referential integrity.
type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Name        string
	Email       string
	RiskProfile string
}

type UpdateInput struct {
	Name        *string
	Email       *string
	RiskProfile *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Investor, error) {
	investor := domain.Investor{Name: in.Name, Email: in.Email, RiskProfile: in.RiskProfile}
	if err := s.DB.WithContext(ctx).Create(&investor).Error; err != nil {
		return nil, err
	}
	return &investor, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Investor, error) {
	var investor domain.Investor
	if err := s.DB.WithContext(ctx).First(&investor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &investor, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Investor, error) {
	var list []domain.Investor
	err := s.DB.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*domain.Investor, error) {
	var investor domain.Investor
	if err := s.DB.WithContext(ctx).First(&investor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if in.Name != nil {
		investor.Name = *in.Name
	}
	if in.Email != nil {
		investor.Email = *in.Email
	}
	if in.RiskProfile != nil {
		investor.RiskProfile = *in.RiskProfile
	}
	if err := s.DB.WithContext(ctx).Save(&investor).Error; err != nil {
		return nil, err
	}
	return &investor, nil
}

// Delete removes an investor only when no portfolio references them. A
// referenced investor fails with ErrInvestorInUse naming the dependent count
// and nothing is applied; a missing id returns (false, nil).
func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var investor domain.Investor
		if err := tx.First(&investor, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		var dependents int64
		if err := tx.Model(&domain.Portfolio{}).Where("investor_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return fmt.Errorf("%w: %d portfolio(s) depend on it", ErrInvestorInUse, dependents)
		}
		if err := tx.Delete(&investor).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}
