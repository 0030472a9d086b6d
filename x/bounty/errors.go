package bounty

import "github.com/algobounty/weave/errors"

// x/bounty reserves 1200 ~ 1209.
var (
	ErrAlreadyInitialized = errors.Register(1200, "bounty already initialized")
	ErrNotResolved        = errors.Register(1201, "bounty not resolved")
	ErrTransferFailed     = errors.Register(1202, "transfer failed")
	ErrNotInitialized     = errors.Register(1203, "bounty not initialized")
	ErrAlreadyResolved    = errors.Register(1204, "bounty already resolved")
)
