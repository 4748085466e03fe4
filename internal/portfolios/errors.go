package portfolios

import "errors"

var (
	ErrFundNotFound     = errors.New("fund not found")
	ErrInvestorNotFound = errors.New("investor not found")
)
