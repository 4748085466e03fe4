package assets

import "errors"

var ErrPortfolioNotFound = errors.New("portfolio not found")
