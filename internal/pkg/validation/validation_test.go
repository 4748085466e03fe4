package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrInvalidID, "input %q", raw)
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("500.00")
	require.NoError(t, err)
	assert.Equal(t, "500", amount.String())

	for _, raw := range []string{"", "0", "-5.00", "abc"} {
		_, err := ParseAmount(raw)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", raw)
	}
}

func TestParseMoney_AllowsZero(t *testing.T) {
	money, err := ParseMoney("0")
	require.NoError(t, err)
	assert.True(t, money.IsZero())

	_, err = ParseMoney("-0.01")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2024-03-15")
	require.NoError(t, err)

	_, err = ParseDate("15/03/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestClosedSets(t *testing.T) {
	assert.True(t, IsValidAccountType("asset"))
	assert.True(t, IsValidAccountType("revenue"))
	assert.False(t, IsValidAccountType("goodwill"))
	assert.False(t, IsValidAccountType(""))

	assert.True(t, IsValidSide("debit"))
	assert.True(t, IsValidSide("credit"))
	assert.False(t, IsValidSide("sideways"))

	assert.True(t, IsValidAssetCategory("real_estate"))
	assert.False(t, IsValidAssetCategory("crypto"))
}
