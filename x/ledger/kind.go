package ledger

import (
	"fmt"

	"github.com/algobounty/weave/errors"
)

// AssetType tells which backend handles an asset.
type AssetType int32

const (
	// Native is the network fee token. It is always present.
	Native AssetType = 0
	// Fungible is a registered asset, identified by its asset id.
	Fungible AssetType = 1
)

// AssetKind identifies a single unit of value handled by the ledger.
type AssetKind struct {
	Type    AssetType `json:"type"`
	AssetID uint64    `json:"asset_id"`
}

// NativeAsset returns the kind of the network fee token.
func NativeAsset() AssetKind {
	return AssetKind{Type: Native}
}

// FungibleAsset returns the kind of a registered asset.
func FungibleAsset(id uint64) AssetKind {
	return AssetKind{Type: Fungible, AssetID: id}
}

// IsNative returns true for the network fee token.
func (k AssetKind) IsNative() bool {
	return k.Type == Native
}

// Validate makes sure the asset id is set only for fungible assets.
func (k AssetKind) Validate() error {
	switch k.Type {
	case Native:
		if k.AssetID != 0 {
			return errors.Wrap(errors.ErrInput, "native asset must not carry an asset id")
		}
	case Fungible:
		if k.AssetID == 0 {
			return errors.Wrap(errors.ErrInput, "fungible asset id required")
		}
	default:
		return errors.Wrapf(errors.ErrInput, "unknown asset type %d", k.Type)
	}
	return nil
}

func (k AssetKind) String() string {
	if k.IsNative() {
		return "native"
	}
	return fmt.Sprintf("asset:%d", k.AssetID)
}
