package assets

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

// Service owns asset rows and the portfolio TotalValue rollup. Every path,
// create included, fully recomputes the affected portfolio's total from its
// current assets rather than adjusting it incrementally. The recompute is
// self-correcting and idempotent, and a single strategy for the field rules
// out drift between code paths.
type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	PortfolioID uint
	Symbol      string
	Category    domain.AssetCategory
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	CostBasis   decimal.Decimal
	AcquiredOn  datatypes.Date
}

type UpdateInput struct {
	PortfolioID *uint
	Symbol      *string
	Category    *domain.AssetCategory
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
	CostBasis   *decimal.Decimal
	AcquiredOn  *datatypes.Date
}

// Create inserts an asset and recomputes its portfolio's total in one
// database transaction. An unknown portfolio id is a precondition failure
// wrapping ErrPortfolioNotFound.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Asset, error) {
	var created domain.Asset
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var portfolio domain.Portfolio
		if err := tx.First(&portfolio, in.PortfolioID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrPortfolioNotFound, in.PortfolioID)
			}
			return err
		}
		created = domain.Asset{
			PortfolioID: in.PortfolioID,
			Symbol:      in.Symbol,
			Category:    in.Category,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			MarketValue: marketValue(in.Quantity, in.UnitPrice),
			CostBasis:   in.CostBasis,
			AcquiredOn:  in.AcquiredOn,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		return recomputeTotal(tx, in.PortfolioID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update amends an asset. A missing id returns (nil, nil) with no side
// effects. The new portfolio's total is always recomputed; the old one too
// when the asset moved.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*domain.Asset, error) {
	var updated *domain.Asset
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset domain.Asset
		if err := tx.First(&asset, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		oldPortfolioID := asset.PortfolioID
		if in.PortfolioID != nil && *in.PortfolioID != asset.PortfolioID {
			var portfolio domain.Portfolio
			if err := tx.First(&portfolio, *in.PortfolioID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", ErrPortfolioNotFound, *in.PortfolioID)
				}
				return err
			}
			asset.PortfolioID = *in.PortfolioID
		}
		if in.Symbol != nil {
			asset.Symbol = *in.Symbol
		}
		if in.Category != nil {
			asset.Category = *in.Category
		}
		if in.Quantity != nil {
			asset.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			asset.UnitPrice = *in.UnitPrice
		}
		if in.Quantity != nil || in.UnitPrice != nil {
			asset.MarketValue = marketValue(asset.Quantity, asset.UnitPrice)
		}
		if in.CostBasis != nil {
			asset.CostBasis = *in.CostBasis
		}
		if in.AcquiredOn != nil {
			asset.AcquiredOn = *in.AcquiredOn
		}

		if err := tx.Save(&asset).Error; err != nil {
			return err
		}
		if err := recomputeTotal(tx, asset.PortfolioID); err != nil {
			return err
		}
		if oldPortfolioID != asset.PortfolioID {
			if err := recomputeTotal(tx, oldPortfolioID); err != nil {
				return err
			}
		}
		updated = &asset
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an asset and recomputes its former portfolio's total in one
// database transaction. A missing id returns (false, nil).
func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset domain.Asset
		if err := tx.First(&asset, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&asset).Error; err != nil {
			return err
		}
		if err := recomputeTotal(tx, asset.PortfolioID); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

// Get is a plain lookup; (nil, nil) when absent.
func (s *Service) Get(ctx context.Context, id uint) (*domain.Asset, error) {
	var asset domain.Asset
	if err := s.DB.WithContext(ctx).First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

// ListByPortfolio returns a portfolio's assets ordered by symbol.
func (s *Service) ListByPortfolio(ctx context.Context, portfolioID uint) ([]domain.Asset, error) {
	var list []domain.Asset
	err := s.DB.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("symbol ASC").
		Find(&list).Error
	return list, err
}

// marketValue derives the stored valuation from quantity and unit price,
// rounded to cents.
func marketValue(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// recomputeTotal resets a portfolio's total to the sum of its current assets
// in a single UPDATE with an in-database subquery, coalescing to zero when
// none remain. One statement, so concurrent asset mutations cannot interleave
// a stale read with the write-back.
func recomputeTotal(tx *gorm.DB, portfolioID uint) error {
	return tx.Model(&domain.Portfolio{}).
		Where("id = ?", portfolioID).
		UpdateColumns(map[string]interface{}{
			"total_value": gorm.Expr("(SELECT COALESCE(SUM(market_value), 0) FROM assets WHERE portfolio_id = ?)", portfolioID),
			"updated_at":  time.Now(),
		}).Error
}
