package ledger

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrUnknownAccountType = errors.New("unknown account type")
	ErrUnknownSide        = errors.New("unknown posting side")
)
