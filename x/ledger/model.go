package ledger

import (
	"encoding/binary"
	"regexp"
	"sort"

	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/orm"
)

var (
	isUnitName  = regexp.MustCompile(`^[A-Za-z0-9]{1,8}$`).MatchString
	isAssetName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{1,32}$`).MatchString
)

const maxDecimals = 19

// Holding is the amount of a single fungible asset owned by a wallet.
type Holding struct {
	AssetID uint64 `json:"asset_id"`
	Amount  uint64 `json:"amount"`
}

// Wallet keeps all the value owned by a single address.
type Wallet struct {
	Native   uint64    `json:"native"`
	Holdings []Holding `json:"holdings"`
}

var _ orm.Model = (*Wallet)(nil)

// Validate requires holdings to be sorted by asset id without duplicates.
func (w *Wallet) Validate() error {
	var last uint64
	for i, h := range w.Holdings {
		if h.AssetID == 0 {
			return errors.Wrapf(errors.ErrModel, "holding %d: missing asset id", i)
		}
		if h.AssetID <= last {
			return errors.Wrapf(errors.ErrModel, "holding %d: not sorted", i)
		}
		last = h.AssetID
	}
	return nil
}

func (w *Wallet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return unmarshal(raw, w)
}

// find returns the position of given asset holding. If the wallet is not
// opted in, the position where it should be inserted is returned.
func (w *Wallet) find(assetID uint64) (int, bool) {
	i := sort.Search(len(w.Holdings), func(i int) bool {
		return w.Holdings[i].AssetID >= assetID
	})
	return i, i < len(w.Holdings) && w.Holdings[i].AssetID == assetID
}

// OptedIn returns true if the wallet can hold given fungible asset.
func (w *Wallet) OptedIn(assetID uint64) bool {
	_, ok := w.find(assetID)
	return ok
}

// AssetBalance returns the amount of given fungible asset.
func (w *Wallet) AssetBalance(assetID uint64) uint64 {
	if i, ok := w.find(assetID); ok {
		return w.Holdings[i].Amount
	}
	return 0
}

// OptIn creates an empty holding. It is a no-op when already opted in.
func (w *Wallet) OptIn(assetID uint64) {
	i, ok := w.find(assetID)
	if ok {
		return
	}
	w.Holdings = append(w.Holdings, Holding{})
	copy(w.Holdings[i+1:], w.Holdings[i:])
	w.Holdings[i] = Holding{AssetID: assetID}
}

// AddAsset increases the holding. The wallet must be opted in.
func (w *Wallet) AddAsset(assetID, amount uint64) error {
	i, ok := w.find(assetID)
	if !ok {
		return errors.Wrapf(ErrNotOptedIn, "asset %d", assetID)
	}
	sum := w.Holdings[i].Amount + amount
	if sum < w.Holdings[i].Amount {
		return errors.Wrapf(errors.ErrOverflow, "asset %d", assetID)
	}
	w.Holdings[i].Amount = sum
	return nil
}

// SubtractAsset decreases the holding. The wallet must be opted in.
func (w *Wallet) SubtractAsset(assetID, amount uint64) error {
	i, ok := w.find(assetID)
	if !ok {
		return errors.Wrapf(ErrNotOptedIn, "asset %d", assetID)
	}
	if w.Holdings[i].Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "asset %d: have %d, need %d", assetID, w.Holdings[i].Amount, amount)
	}
	w.Holdings[i].Amount -= amount
	return nil
}

// AddNative increases the native balance.
func (w *Wallet) AddNative(amount uint64) error {
	sum := w.Native + amount
	if sum < w.Native {
		return errors.Wrap(errors.ErrOverflow, "native balance")
	}
	w.Native = sum
	return nil
}

// SubtractNative decreases the native balance.
func (w *Wallet) SubtractNative(amount uint64) error {
	if w.Native < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "native: have %d, need %d", w.Native, amount)
	}
	w.Native -= amount
	return nil
}

// WalletBucket stores wallets, using the owner address as the key.
type WalletBucket struct {
	orm.ModelBucket
}

// NewWalletBucket returns a bucket for wallets.
func NewWalletBucket() WalletBucket {
	return WalletBucket{
		ModelBucket: orm.NewModelBucket("wallet", &Wallet{}),
	}
}

// GetOrCreate loads the wallet of given address. An empty wallet is
// returned if it was never saved.
func (b WalletBucket) GetOrCreate(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "wallet address")
	}
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}

// Asset is the definition of a fungible asset.
type Asset struct {
	ID       uint64        `json:"id"`
	UnitName string        `json:"unit_name"`
	Name     string        `json:"name"`
	Decimals uint32        `json:"decimals"`
	Creator  weave.Address `json:"creator"`
}

var _ orm.Model = (*Asset)(nil)

func (a *Asset) Validate() error {
	var errs error
	if a.ID == 0 {
		errs = errors.AppendField(errs, "ID", errors.ErrEmpty)
	}
	if !isUnitName(a.UnitName) {
		errs = errors.Append(errs, errors.Field("UnitName", errors.ErrInput, "invalid unit name %q", a.UnitName))
	}
	if !isAssetName(a.Name) {
		errs = errors.Append(errs, errors.Field("Name", errors.ErrInput, "invalid name %q", a.Name))
	}
	if a.Decimals > maxDecimals {
		errs = errors.Append(errs, errors.Field("Decimals", errors.ErrInput, "at most %d", maxDecimals))
	}
	if len(a.Creator) != 0 {
		errs = errors.AppendField(errs, "Creator", a.Creator.Validate())
	}
	return errs
}

func (a *Asset) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Asset) Unmarshal(raw []byte) error {
	return unmarshal(raw, a)
}

// AssetKey returns the database key of an asset.
func AssetKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// AssetBucket stores asset definitions, using the big endian encoded asset id
// as the key.
type AssetBucket struct {
	orm.ModelBucket
}

// NewAssetBucket returns a bucket for fungible assets.
func NewAssetBucket() AssetBucket {
	return AssetBucket{
		ModelBucket: orm.NewModelBucket("asset", &Asset{}),
	}
}

// Get loads the asset definition. ErrUnknownAsset is returned if it does not
// exist.
func (b AssetBucket) Get(db weave.ReadOnlyKVStore, id uint64) (*Asset, error) {
	var a Asset
	switch err := b.One(db, AssetKey(id), &a); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrUnknownAsset, "asset %d", id)
	default:
		return nil, err
	}
}

// Create stores a new asset definition. ErrDuplicate is returned if the id is
// already taken.
func (b AssetBucket) Create(db weave.KVStore, a *Asset) error {
	switch err := b.Has(db, AssetKey(a.ID)); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "asset %d", a.ID)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return b.Put(db, AssetKey(a.ID), a)
}
