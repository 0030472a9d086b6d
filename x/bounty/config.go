package bounty

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/gconf"
)

const configPkg = "bounty"

// Refund policies. The zero value keeps the default behaviour so that a
// configuration patch can always restore it.
const (
	RefundPolicyDefault          int32 = 0
	RefundPolicyAlways           int32 = 1
	RefundPolicyBeforeResolution int32 = 2
)

// Configuration of the bounty extension, stored with gconf.
type Configuration struct {
	Owner        weave.Address `json:"owner"`
	RefundPolicy int32         `json:"refund_policy"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) GetOwner() weave.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	var errs error
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	if c.RefundPolicy < RefundPolicyDefault || c.RefundPolicy > RefundPolicyBeforeResolution {
		errs = errors.Append(errs, errors.Field("RefundPolicy", errors.ErrInput, "unknown policy %d", c.RefundPolicy))
	}
	return errs
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return unmarshal(raw, c)
}

// refundAfterResolution tells if the maintainer may still reclaim value
// once the issue is resolved.
func (c *Configuration) refundAfterResolution() bool {
	return c.RefundPolicy != RefundPolicyBeforeResolution
}

// loadConfig returns the stored configuration or the defaults if none was
// provided in genesis.
func loadConfig(db weave.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, configPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}
