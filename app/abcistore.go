package app

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore exposes the abci.Query interface of an application as a
// ReadOnlyKVStore. Buckets can be used on top of it to read and parse
// committed models.
type ABCIStore struct {
	app  abci.Application
	path string
}

var _ weave.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a store reading raw keys through the query path
// registered for the whole database.
func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app, path: "/"}
}

// Get will query for exactly one value over the abci store.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	resp := a.app.Query(abci.RequestQuery{
		Path: a.path,
		Data: key,
	})
	if resp.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(resp.Code, resp.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(resp.Value); err != nil {
		return nil, errors.Wrap(err, "unmarshal result set")
	}
	switch len(value.Results) {
	case 0:
		return nil, nil
	case 1:
		return value.Results[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrState, "%d results for a single key", len(value.Results))
	}
}

// Has returns true if the given key in in the abci app store
func (a *ABCIStore) Has(key []byte) (bool, error) {
	v, err := a.Get(key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// RegisterRawQuery registers "/", returning the value stored under the
// exact database key. ABCIStore reads through it.
func RegisterRawQuery(qr weave.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db weave.ReadOnlyKVStore, mod string, key []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
	if len(key) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "key")
	}
	value, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return []weave.Model{weave.Pair(key, value)}, nil
}
