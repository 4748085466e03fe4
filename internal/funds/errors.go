package funds

import "errors"

// ErrFundInUse blocks deletion while portfolios still reference the fund; the
// wrapped message carries the exact dependent count.
var ErrFundInUse = errors.New("fund is referenced by existing portfolios")
