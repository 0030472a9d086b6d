package ledger

import "github.com/algobounty/weave/errors"

// x/ledger reserves 1100 ~ 1109.
var (
	ErrNotOptedIn   = errors.Register(1100, "account not opted in")
	ErrUnknownAsset = errors.Register(1101, "unknown asset")
)
