package ledger

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
)

// Backend moves value of a single asset type between wallets. Every method
// either fully succeeds or leaves the store untouched.
type Backend interface {
	Transfer(db weave.KVStore, src, dest weave.Address, kind AssetKind, amount uint64) error
	OptIn(db weave.KVStore, addr weave.Address, kind AssetKind) error
	Balance(db weave.ReadOnlyKVStore, addr weave.Address, kind AssetKind) (uint64, error)
	Issue(db weave.KVStore, dest weave.Address, kind AssetKind, amount uint64) error
}

// NativeLedger handles the network fee token.
type NativeLedger struct {
	wallets WalletBucket
}

var _ Backend = NativeLedger{}

// NewNativeLedger returns the native token backend.
func NewNativeLedger() NativeLedger {
	return NativeLedger{wallets: NewWalletBucket()}
}

// Transfer moves native tokens. Unknown source accounts hold nothing.
func (l NativeLedger) Transfer(db weave.KVStore, src, dest weave.Address, kind AssetKind, amount uint64) error {
	if !kind.IsNative() {
		return errors.Wrapf(errors.ErrType, "native ledger cannot move %s", kind)
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}
	sender, err := l.wallets.GetOrCreate(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	recipient, err := l.wallets.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := sender.SubtractNative(amount); err != nil {
		return err
	}
	if err := recipient.AddNative(amount); err != nil {
		return err
	}
	return saveTransfer(db, l.wallets, src, sender, dest, recipient)
}

func saveTransfer(db weave.KVStore, b WalletBucket, src weave.Address, sender *Wallet, dest weave.Address, recipient *Wallet) error {
	if err := b.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save source")
	}
	if err := b.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save destination")
	}
	return nil
}

// OptIn is not required for native tokens.
func (l NativeLedger) OptIn(db weave.KVStore, addr weave.Address, kind AssetKind) error {
	if !kind.IsNative() {
		return errors.Wrapf(errors.ErrType, "native ledger cannot opt in to %s", kind)
	}
	return addr.Validate()
}

func (l NativeLedger) Balance(db weave.ReadOnlyKVStore, addr weave.Address, kind AssetKind) (uint64, error) {
	w, err := l.wallets.GetOrCreate(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Native, nil
}

// Issue creates new native tokens out of thin air.
func (l NativeLedger) Issue(db weave.KVStore, dest weave.Address, kind AssetKind, amount uint64) error {
	w, err := l.wallets.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := w.AddNative(amount); err != nil {
		return err
	}
	return l.wallets.Put(db, dest, w)
}

// AssetLedger handles registered fungible assets. Both sides of a
// transfer must be opted in to the asset.
type AssetLedger struct {
	wallets WalletBucket
	assets  AssetBucket
}

var _ Backend = AssetLedger{}

// NewAssetLedger returns the fungible asset backend.
func NewAssetLedger() AssetLedger {
	return AssetLedger{
		wallets: NewWalletBucket(),
		assets:  NewAssetBucket(),
	}
}

func (l AssetLedger) Transfer(db weave.KVStore, src, dest weave.Address, kind AssetKind, amount uint64) error {
	if err := l.known(db, kind); err != nil {
		return err
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}
	sender, err := l.wallets.GetOrCreate(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if !sender.OptedIn(kind.AssetID) {
		return errors.Wrapf(ErrNotOptedIn, "source %s", src)
	}
	recipient, err := l.wallets.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !recipient.OptedIn(kind.AssetID) {
		return errors.Wrapf(ErrNotOptedIn, "destination %s", dest)
	}
	if err := sender.SubtractAsset(kind.AssetID, amount); err != nil {
		return err
	}
	if err := recipient.AddAsset(kind.AssetID, amount); err != nil {
		return err
	}
	return saveTransfer(db, l.wallets, src, sender, dest, recipient)
}

// OptIn creates an empty holding of given asset. Opting in twice is a
// no-op.
func (l AssetLedger) OptIn(db weave.KVStore, addr weave.Address, kind AssetKind) error {
	if err := l.known(db, kind); err != nil {
		return err
	}
	w, err := l.wallets.GetOrCreate(db, addr)
	if err != nil {
		return err
	}
	if w.OptedIn(kind.AssetID) {
		return nil
	}
	w.OptIn(kind.AssetID)
	return l.wallets.Put(db, addr, w)
}

func (l AssetLedger) Balance(db weave.ReadOnlyKVStore, addr weave.Address, kind AssetKind) (uint64, error) {
	w, err := l.wallets.GetOrCreate(db, addr)
	if err != nil {
		return 0, err
	}
	return w.AssetBalance(kind.AssetID), nil
}

// Issue mints the asset into the destination wallet, opting it in if
// needed.
func (l AssetLedger) Issue(db weave.KVStore, dest weave.Address, kind AssetKind, amount uint64) error {
	if err := l.known(db, kind); err != nil {
		return err
	}
	w, err := l.wallets.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	w.OptIn(kind.AssetID)
	if err := w.AddAsset(kind.AssetID, amount); err != nil {
		return err
	}
	return l.wallets.Put(db, dest, w)
}

func (l AssetLedger) known(db weave.ReadOnlyKVStore, kind AssetKind) error {
	if kind.Type != Fungible {
		return errors.Wrapf(errors.ErrType, "asset ledger cannot handle %s", kind)
	}
	_, err := l.assets.Get(db, kind.AssetID)
	return err
}

// Controller routes ledger operations to the backend of the asset type.
type Controller struct {
	native Backend
	asset  Backend
}

// NewController returns a controller using the default backends.
func NewController() Controller {
	return Controller{
		native: NewNativeLedger(),
		asset:  NewAssetLedger(),
	}
}

func (c Controller) backend(kind AssetKind) (Backend, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if kind.IsNative() {
		return c.native, nil
	}
	return c.asset, nil
}

// Transfer moves amount of given asset from src to dest.
func (c Controller) Transfer(db weave.KVStore, src, dest weave.Address, kind AssetKind, amount uint64) error {
	b, err := c.backend(kind)
	if err != nil {
		return err
	}
	return b.Transfer(db, src, dest, kind, amount)
}

// OptIn allows addr to receive given asset.
func (c Controller) OptIn(db weave.KVStore, addr weave.Address, kind AssetKind) error {
	b, err := c.backend(kind)
	if err != nil {
		return err
	}
	return b.OptIn(db, addr, kind)
}

// Balance returns the amount of given asset owned by addr.
func (c Controller) Balance(db weave.ReadOnlyKVStore, addr weave.Address, kind AssetKind) (uint64, error) {
	b, err := c.backend(kind)
	if err != nil {
		return 0, err
	}
	return b.Balance(db, addr, kind)
}

// Issue mints new value into dest.
func (c Controller) Issue(db weave.KVStore, dest weave.Address, kind AssetKind, amount uint64) error {
	b, err := c.backend(kind)
	if err != nil {
		return err
	}
	return b.Issue(db, dest, kind, amount)
}
