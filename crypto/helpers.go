package crypto

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	amino "github.com/tendermint/go-amino"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

var cdc = amino.NewCodec()

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() weave.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey holds the raw bytes of an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// PrivateKey holds the raw bytes of an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// Signature holds the raw bytes of an ed25519 signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

// Address is the address of the signature condition of this key.
// An empty key has no address.
func (p *PublicKey) Address() weave.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}

// GetEd25519 returns the raw private key bytes.
func (p *PrivateKey) GetEd25519() []byte {
	if p == nil {
		return nil
	}
	return p.Ed25519
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	return errors.Wrap(unmarshal(raw, p), "public key")
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	return errors.Wrap(unmarshal(raw, p), "private key")
}

func (s *Signature) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Signature) Unmarshal(raw []byte) error {
	return errors.Wrap(unmarshal(raw, s), "signature")
}

func unmarshal(raw []byte, dst interface{}) error {
	if err := cdc.UnmarshalBinaryBare(raw, dst); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
