package ledger

import (
	"github.com/algobounty/weave/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// unmarshal decodes raw into a fresh dst. Zero values are encoded as no
// bytes at all, which amino refuses to decode.
func unmarshal(raw []byte, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(raw, dst); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
