package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"backoffice-backend/internal/domain"
)

// effectKey pairs an account type with a posting side.
type effectKey struct {
	accountType domain.AccountType
	side        domain.Side
}

// effects encodes the normal-balance convention in one place: debits
// arithmetically increase asset and expense balances; for liability, equity
// and revenue accounts the credit side is the increasing one.
var effects = map[effectKey]int32{
	{domain.AccountTypeAsset, domain.SideDebit}:      +1,
	{domain.AccountTypeAsset, domain.SideCredit}:     -1,
	{domain.AccountTypeExpense, domain.SideDebit}:    +1,
	{domain.AccountTypeExpense, domain.SideCredit}:   -1,
	{domain.AccountTypeLiability, domain.SideDebit}:  -1,
	{domain.AccountTypeLiability, domain.SideCredit}: +1,
	{domain.AccountTypeEquity, domain.SideDebit}:     -1,
	{domain.AccountTypeEquity, domain.SideCredit}:    +1,
	{domain.AccountTypeRevenue, domain.SideDebit}:    -1,
	{domain.AccountTypeRevenue, domain.SideCredit}:   +1,
}

// Effect returns the signed multiplier a posting on the given side applies to
// the balance of an account of the given type. Values outside the closed sets
// are an error, never a silent default: a wrong sign here corrupts balances.
func Effect(accountType domain.AccountType, side domain.Side) (int32, error) {
	if side != domain.SideDebit && side != domain.SideCredit {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSide, side)
	}
	m, ok := effects[effectKey{accountType, side}]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAccountType, accountType)
	}
	return m, nil
}

// signedAmount applies the rule-table multiplier to an amount, producing the
// delta a posting contributes to its account's balance.
func signedAmount(accountType domain.AccountType, side domain.Side, amount decimal.Decimal) (decimal.Decimal, error) {
	m, err := Effect(accountType, side)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(decimal.NewFromInt32(m)), nil
}
