package app

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/algobounty/weave"
	"github.com/algobounty/weave/crypto"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/x/bounty"
	"github.com/algobounty/weave/x/ledger"
)

// AddressPrefix is the human readable part of bech32 encoded addresses
// printed by the node tooling.
const AddressPrefix = "bounty"

// DefaultNative is the native token balance of the development account.
const DefaultNative uint64 = 123456789

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// You can set the native balance and the account address with
// the first and second argument.
func GenInitOptions(args []string) (json.RawMessage, error) {
	native := DefaultNative
	if len(args) > 0 {
		n, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil || n == 0 {
			return nil, errors.Wrapf(errors.ErrAmount, "invalid native balance %q", args[0])
		}
		native = n
	}

	var addr weave.Address
	if len(args) > 1 {
		if err := addr.UnmarshalJSON([]byte(strconv.Quote(args[1]))); err != nil {
			return nil, err
		}
	} else {
		// if no address provided, auto-generate one
		// and print out the keys
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(keys)
	}

	opts := map[string]interface{}{
		"ledger": ledger.Genesis{
			Assets: []ledger.Asset{},
			Accounts: []ledger.GenesisAccount{
				{Address: addr, Native: native, Holdings: []ledger.Holding{}},
			},
		},
		"conf": map[string]interface{}{
			"bounty": bounty.Configuration{
				Owner:        addr,
				RefundPolicy: bounty.RefundPolicyDefault,
			},
		},
	}
	return json.MarshalIndent(opts, "", "  ")
}

type output struct {
	Address string             `json:"address"`
	Pubkey  *crypto.PublicKey  `json:"pub_key"`
	Secret  *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
// You can give tokens to this address and
// import the keys in a client to use them
func GenerateCoinKey() (weave.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	b32, err := addr.Bech32(AddressPrefix)
	if err != nil {
		return nil, "", errors.Wrap(err, "bech32 address")
	}
	out := output{Address: b32, Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return addr, string(keys), nil
}
