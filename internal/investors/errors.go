package investors

import "errors"

// ErrInvestorInUse blocks deletion while portfolios still reference the
// investor; the wrapped message carries the exact dependent count.
var ErrInvestorInUse = errors.New("investor is referenced by existing portfolios")
