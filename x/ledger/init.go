package ledger

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
)

const optKey = "ledger"

// GenesisAccount is used to parse the json from genesis file
// use weave.Address, so address in hex, not base64
type GenesisAccount struct {
	Address  weave.Address `json:"address"`
	Native   uint64        `json:"native"`
	Holdings []Holding     `json:"holdings"`
}

// Genesis is the "ledger" section of the genesis file.
type Genesis struct {
	Assets   []Asset          `json:"assets"`
	Accounts []GenesisAccount `json:"accounts"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis will parse initial assets and account balances from genesis
// and save them to the database. Assets are created before the accounts
// so that holdings can refer to them.
func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	assets := NewAssetBucket()
	for i := range gen.Assets {
		if err := assets.Create(kv, &gen.Assets[i]); err != nil {
			return errors.Wrapf(err, "asset %d", gen.Assets[i].ID)
		}
	}

	control := NewController()
	for _, acct := range gen.Accounts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrap(err, "account address")
		}
		if acct.Native > 0 {
			if err := control.Issue(kv, acct.Address, NativeAsset(), acct.Native); err != nil {
				return errors.Wrapf(err, "account %s", acct.Address)
			}
		}
		for _, h := range acct.Holdings {
			if err := control.Issue(kv, acct.Address, FungibleAsset(h.AssetID), h.Amount); err != nil {
				return errors.Wrapf(err, "account %s", acct.Address)
			}
		}
	}
	return nil
}
