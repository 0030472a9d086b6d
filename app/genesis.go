package app

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
)

// Genesis is the subset of the tendermint genesis file read by the
// application.
type Genesis struct {
	ChainID  string        `json:"chain_id"`
	AppState weave.Options `json:"app_state"`
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...weave.Initializer) weave.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []weave.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	for i, init := range c.inits {
		if err := init.FromGenesis(opts, kv); err != nil {
			return errors.Wrapf(err, "initializer %d", i)
		}
	}
	return nil
}
