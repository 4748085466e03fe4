package portfolios

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backoffice-backend/internal/domain"
)

func setupPortfoliosTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Fund{}, &domain.Investor{}, &domain.Portfolio{}, &domain.Asset{}))
	return &Service{DB: db}, db
}

func seedParents(t *testing.T, db *gorm.DB) (*domain.Investor, *domain.Fund) {
	investor := domain.Investor{Name: "Ada"}
	require.NoError(t, db.Create(&investor).Error)
	fund := domain.Fund{Name: "Balanced Fund", Currency: "USD"}
	require.NoError(t, db.Create(&fund).Error)
	return &investor, &fund
}

func TestCreate_UnknownInvestor(t *testing.T) {
	svc, db := setupPortfoliosTest(t)
	_, fund := seedParents(t, db)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:       "Growth",
		InvestorID: 9999,
		FundID:     fund.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvestorNotFound)
	assert.Contains(t, err.Error(), "9999")
}

func TestCreate_UnknownFund(t *testing.T) {
	svc, db := setupPortfoliosTest(t)
	investor, _ := seedParents(t, db)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:       "Growth",
		InvestorID: investor.ID,
		FundID:     9999,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFundNotFound)
}

func TestList_Filters(t *testing.T) {
	svc, db := setupPortfoliosTest(t)
	ctx := context.Background()
	investor, fund := seedParents(t, db)
	otherFund := domain.Fund{Name: "Other Fund", Currency: "EUR"}
	require.NoError(t, db.Create(&otherFund).Error)

	_, err := svc.Create(ctx, CreateInput{Name: "One", InvestorID: investor.ID, FundID: fund.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Name: "Two", InvestorID: investor.ID, FundID: otherFund.ID})
	require.NoError(t, err)

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byFund, err := svc.List(ctx, ListFilter{FundID: otherFund.ID})
	require.NoError(t, err)
	require.Len(t, byFund, 1)
	assert.Equal(t, "Two", byFund[0].Name)
}

// Deleting a portfolio removes its assets with it, in one unit of work.
func TestDelete_CascadesAssets(t *testing.T) {
	svc, db := setupPortfoliosTest(t)
	ctx := context.Background()
	investor, fund := seedParents(t, db)

	portfolio, err := svc.Create(ctx, CreateInput{Name: "Doomed", InvestorID: investor.ID, FundID: fund.ID})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&domain.Asset{
			PortfolioID: portfolio.ID,
			Symbol:      "ACME",
			Category:    domain.AssetCategoryEquity,
			Quantity:    decimal.RequireFromString("1"),
			UnitPrice:   decimal.RequireFromString("10.00"),
			MarketValue: decimal.RequireFromString("10.00"),
			CostBasis:   decimal.RequireFromString("10.00"),
		}).Error)
	}

	deleted, err := svc.Delete(ctx, portfolio.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var remaining int64
	require.NoError(t, db.Model(&domain.Asset{}).Where("portfolio_id = ?", portfolio.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestDelete_Missing(t *testing.T) {
	svc, _ := setupPortfoliosTest(t)
	deleted, err := svc.Delete(context.Background(), 9999)
	require.NoError(t, err)
	assert.False(t, deleted)
}
