package weavetest

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/crypto"
)

// NewKey returns a freshly generated ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a signature condition of a freshly generated key.
func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}
