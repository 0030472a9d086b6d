package bounty

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/gconf"
)

// Initializer loads the extension configuration from the genesis file.
// The "conf" section is optional; defaults apply when it is missing.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(kv, opts, configPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "bounty configuration")
	}
}
