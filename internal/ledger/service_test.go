package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"backoffice-backend/internal/domain"
)

func setupLedgerTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Account{}, &domain.Transaction{}))
	return &Service{DB: db}, db
}

func newAccount(t *testing.T, db *gorm.DB, accountType domain.AccountType, balance string) *domain.Account {
	account := domain.Account{
		Name:    "Test " + string(accountType),
		Type:    accountType,
		Balance: decimal.RequireFromString(balance),
	}
	require.NoError(t, db.Create(&account).Error)
	return &account
}

func accountBalance(t *testing.T, db *gorm.DB, id uint) decimal.Decimal {
	var account domain.Account
	require.NoError(t, db.First(&account, id).Error)
	return account.Balance
}

func assertBalance(t *testing.T, db *gorm.DB, id uint, want string) {
	t.Helper()
	got := accountBalance(t, db, id)
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "balance = %s, want %s", got, want)
}

func testDate() datatypes.Date {
	return datatypes.Date(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
}

// Posting a debit to an asset account raises the balance; deleting the same
// transaction restores it (spec round-trip property).
func TestCreateThenDelete_RoundTrip(t *testing.T) {
	svc, db := setupLedgerTest(t)
	ctx := context.Background()
	account := newAccount(t, db, domain.AccountTypeAsset, "1000.00")

	trn, err := svc.Create(ctx, CreateInput{
		AccountID: account.ID,
		Side:      domain.SideDebit,
		Amount:    decimal.RequireFromString("500.00"),
		Date:      testDate(),
	})
	require.NoError(t, err)
	require.NotNil(t, trn)
	assertBalance(t, db, account.ID, "1500.00")

	deleted, err := svc.Delete(ctx, trn.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assertBalance(t, db, account.ID, "1000.00")
}

func TestCreate_UnknownAccount(t *testing.T) {
	svc, db := setupLedgerTest(t)

	_, err := svc.Create(context.Background(), CreateInput{
		AccountID: 9999,
		Side:      domain.SideDebit,
		Amount:    decimal.RequireFromString("10.00"),
		Date:      testDate(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Contains(t, err.Error(), "9999")

	// Nothing committed.
	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreate_CreditOnLiabilityIncreasesBalance(t *testing.T) {
	svc, db := setupLedgerTest(t)
	account := newAccount(t, db, domain.AccountTypeLiability, "200.00")

	_, err := svc.Create(context.Background(), CreateInput{
		AccountID: account.ID,
		Side:      domain.SideCredit,
		Amount:    decimal.RequireFromString("50.00"),
		Date:      testDate(),
	})
	require.NoError(t, err)
	assertBalance(t, db, account.ID, "250.00")
}

// Second delete of the same transaction returns false and leaves the balance
// alone (spec idempotence property).
func TestDelete_Twice(t *testing.T) {
	svc, db := setupLedgerTest(t)
	ctx := context.Background()
	account := newAccount(t, db, domain.AccountTypeAsset, "1000.00")

	trn, err := svc.Create(ctx, CreateInput{
		AccountID: account.ID,
		Side:      domain.SideDebit,
		Amount:    decimal.RequireFromString("100.00"),
		Date:      testDate(),
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, trn.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assertBalance(t, db, account.ID, "1000.00")

	deleted, err = svc.Delete(ctx, trn.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assertBalance(t, db, account.ID, "1000.00")
}

// Flipping a credit posting to debit on an asset account reverses the old
// effect then applies the new one: 900 → 1000 → 1100 (spec reclassification
// property).
func TestUpdate_ReclassifySide(t *testing.T) {
	svc, db := setupLedgerTest(t)
	ctx := context.Background()
	account := newAccount(t, db, domain.AccountTypeAsset, "1000.00")

	trn, err := svc.Create(ctx, CreateInput{
		AccountID: account.ID,
		Side:      domain.SideCredit,
		Amount:    decimal.RequireFromString("100.00"),
		Date:      testDate(),
	})
	require.NoError(t, err)
	assertBalance(t, db, account.ID, "900.00")

	debit := domain.SideDebit
	updated, err := svc.Update(ctx, trn.ID, UpdateInput{Side: &debit})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.SideDebit, updated.Side)
	assertBalance(t, db, account.ID, "1100.00")
}

// Moving a posting between accounts restores the old account and applies the
// effect on the new one (spec cross-account move property).
func TestUpdate_MoveAcrossAccounts(t *testing.T) {
	svc, db := setupLedgerTest(t)
	ctx := context.Background()
	accountA := newAccount(t, db, domain.AccountTypeAsset, "1000.00")
	accountB := newAccount(t, db, domain.AccountTypeAsset, "500.00")

	trn, err := svc.Create(ctx, CreateInput{
		AccountID: accountA.ID,
		Side:      domain.SideCredit,
		Amount:    decimal.RequireFromString("100.00"),
		Date:      testDate(),
	})
	require.NoError(t, err)
	assertBalance(t, db, accountA.ID, "900.00")

	updated, err := svc.Update(ctx, trn.ID, UpdateInput{AccountID: &accountB.ID})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, accountB.ID, updated.AccountID)
	assertBalance(t, db, accountA.ID, "1000.00")
	assertBalance(t, db, accountB.ID, "400.00")
}

func TestUpdate_AmountChange(t *testing.T) {
	svc, db := setupLedgerTest(t)
	ctx := context.Background()
	account := newAccount(t, db, domain.AccountTypeExpense, "0.00")

	trn, err := svc.Create(ctx, CreateInput{
		AccountID: account.ID,
		Side:      domain.SideDebit,
		Amount:    decimal.RequireFromString("75.00"),
		Date:      testDate(),
	})
	require.NoError(t, err)
	assertBalance(t, db, account.ID, "75.00")

	amount := decimal.RequireFromString("125.00")
	_, err = svc.Update(ctx, trn.ID, UpdateInput{Amount: &amount})
	require.NoError(t, err)
	assertBalance(t, db, account.ID, "125.00")
}

// Description-only amendments must not repost.
func TestUpdate_NonBalanceFieldsOnly(t *testing.T) {
	svc, db := setupLedgerTest(t)
	ctx := context.Background()
	account := newAccount(t, db, domain.AccountTypeRevenue, "300.00")

	trn, err := svc.Create(ctx, CreateInput{
		AccountID: account.ID,
		Side:      domain.SideCredit,
		Amount:    decimal.RequireFromString("30.00"),
		Date:      testDate(),
	})
	require.NoError(t, err)
	assertBalance(t, db, account.ID, "330.00")

	description := "corrected memo"
	reference := "INV-42"
	updated, err := svc.Update(ctx, trn.ID, UpdateInput{Description: &description, Reference: &reference})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "corrected memo", updated.Description)
	assert.Equal(t, "INV-42", updated.Reference)
	assertBalance(t, db, account.ID, "330.00")
}

func TestUpdate_MissingTransaction(t *testing.T) {
	svc, _ := setupLedgerTest(t)
	description := "whatever"
	updated, err := svc.Update(context.Background(), 9999, UpdateInput{Description: &description})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdate_MoveToUnknownAccountRollsBack(t *testing.T) {
	svc, db := setupLedgerTest(t)
	ctx := context.Background()
	account := newAccount(t, db, domain.AccountTypeAsset, "1000.00")

	trn, err := svc.Create(ctx, CreateInput{
		AccountID: account.ID,
		Side:      domain.SideDebit,
		Amount:    decimal.RequireFromString("100.00"),
		Date:      testDate(),
	})
	require.NoError(t, err)
	assertBalance(t, db, account.ID, "1100.00")

	missing := uint(9999)
	_, err = svc.Update(ctx, trn.ID, UpdateInput{AccountID: &missing})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	// The reversal inside the failed transaction must not be visible.
	assertBalance(t, db, account.ID, "1100.00")
	var kept domain.Transaction
	require.NoError(t, db.First(&kept, trn.ID).Error)
	assert.Equal(t, account.ID, kept.AccountID)
}

// Balance always equals opening balance plus the signed effect of every
// surviving transaction, across a mixed sequence of mutations.
func TestBalanceInvariant_MixedSequence(t *testing.T) {
	svc, db := setupLedgerTest(t)
	ctx := context.Background()
	account := newAccount(t, db, domain.AccountTypeAsset, "250.00")
	opening := decimal.RequireFromString("250.00")

	var ids []uint
	amounts := []string{"10.00", "20.00", "30.00", "40.00"}
	sides := []domain.Side{domain.SideDebit, domain.SideCredit, domain.SideDebit, domain.SideCredit}
	for i := range amounts {
		trn, err := svc.Create(ctx, CreateInput{
			AccountID: account.ID,
			Side:      sides[i],
			Amount:    decimal.RequireFromString(amounts[i]),
			Date:      testDate(),
		})
		require.NoError(t, err)
		ids = append(ids, trn.ID)
	}

	_, err := svc.Delete(ctx, ids[1])
	require.NoError(t, err)
	newAmount := decimal.RequireFromString("35.00")
	_, err = svc.Update(ctx, ids[2], UpdateInput{Amount: &newAmount})
	require.NoError(t, err)

	var remaining []domain.Transaction
	require.NoError(t, db.Where("account_id = ?", account.ID).Find(&remaining).Error)
	expected := opening
	for _, trn := range remaining {
		m, err := Effect(domain.AccountTypeAsset, trn.Side)
		require.NoError(t, err)
		expected = expected.Add(trn.Amount.Mul(decimal.NewFromInt32(m)))
	}
	got := accountBalance(t, db, account.ID)
	assert.True(t, got.Equal(expected), "balance = %s, want %s", got, expected)
}
