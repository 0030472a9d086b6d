package ledger

import (
	"encoding/json"
	"testing"

	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/store"
	"github.com/algobounty/weave/weavetest"
	"github.com/algobounty/weave/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	alice := weavetest.NewCondition().Address()

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		native  uint64
		asset   uint64
	}{
		"empty genesis": {
			genesis: `{}`,
		},
		"assets and accounts": {
			genesis: `{"ledger": {
				"assets": [{"id": 1, "unit_name": "USDC", "name": "USD Coin", "decimals": 6}],
				"accounts": [{"address": "` + alice.String() + `", "native": 42, "holdings": [{"asset_id": 1, "amount": 9}]}]
			}}`,
			native: 42,
			asset:  9,
		},
		"opted in with zero amount": {
			genesis: `{"ledger": {
				"assets": [{"id": 1, "unit_name": "USDC", "name": "USD Coin"}],
				"accounts": [{"address": "` + alice.String() + `", "holdings": [{"asset_id": 1}]}]
			}}`,
		},
		"holding of unknown asset": {
			genesis: `{"ledger": {
				"accounts": [{"address": "` + alice.String() + `", "holdings": [{"asset_id": 1, "amount": 9}]}]
			}}`,
			wantErr: ErrUnknownAsset,
		},
		"invalid address": {
			genesis: `{"ledger": {"accounts": [{"address": "", "native": 1}]}}`,
			wantErr: errors.ErrInput,
		},
		"invalid asset": {
			genesis: `{"ledger": {"assets": [{"id": 1, "unit_name": "", "name": "x"}]}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts weave.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}
			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}

			ctrl := NewController()
			n, err := ctrl.Balance(db, alice, NativeAsset())
			assert.Nil(t, err)
			assert.Equal(t, tc.native, n)
			w, err := NewWalletBucket().GetOrCreate(db, alice)
			assert.Nil(t, err)
			assert.Equal(t, tc.asset, w.AssetBalance(1))
		})
	}
}
