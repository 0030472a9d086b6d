package bounty

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/store"
	"github.com/algobounty/weave/x/ledger"
)

// Confirmation messages returned by successful operations.
const (
	createdPrefix  = "Bounty created for issue: "
	MsgFunded      = "Funded bounty successfully"
	MsgDistributed = "Distributed to contributor"
	MsgResolved    = "Issue marked as resolved"
	MsgRefunded    = "Refunded to maintainer"
)

// MsgCreated returns the confirmation of a bounty creation.
func MsgCreated(issueID string) string {
	return createdPrefix + issueID
}

// Ledger moves value in and out of the bounty custody. A failed call must
// not leave any trace in the store.
type Ledger interface {
	Transfer(db weave.KVStore, src, dest weave.Address, kind ledger.AssetKind, amount uint64) error
	OptIn(db weave.KVStore, addr weave.Address, kind ledger.AssetKind) error
}

var _ Ledger = ledger.Controller{}

// Controller applies bounty operations. Each operation loads the record of
// the issue, tests all preconditions, moves the value and saves the record.
// All writes are staged and only written when everything succeeded.
type Controller struct {
	bucket Bucket
	ledger Ledger
}

// NewController returns a controller moving value with given ledger.
func NewController(l Ledger) Controller {
	return Controller{
		bucket: NewBucket(),
		ledger: l,
	}
}

// Create initializes the bounty of an issue. For fungible assets the
// custody account is opted in, so the asset must exist.
func (c Controller) Create(db weave.KVStore, issueID string, kind ledger.AssetKind, maintainer, caller weave.Address) (string, error) {
	err := atomically(db, func(db weave.KVStore) error {
		b, err := c.bucket.Load(db, issueID)
		if err != nil {
			return err
		}
		if err := b.Create(issueID, kind, maintainer, caller); err != nil {
			return err
		}
		if err := c.ledger.OptIn(db, b.Custody(), b.Asset); err != nil {
			return errors.Wrap(err, "custody opt in")
		}
		return c.bucket.Save(db, b)
	})
	if err != nil {
		return "", err
	}
	return MsgCreated(issueID), nil
}

// Fund moves amount from the caller into the bounty custody.
func (c Controller) Fund(db weave.KVStore, issueID string, amount uint64, caller weave.Address) (string, error) {
	err := atomically(db, func(db weave.KVStore) error {
		b, err := c.bucket.Load(db, issueID)
		if err != nil {
			return err
		}
		if err := b.CanFund(amount); err != nil {
			return err
		}
		if err := c.transfer(db, caller, b.Custody(), b.Asset, amount); err != nil {
			return err
		}
		b.Total += amount
		return c.bucket.Save(db, b)
	})
	if err != nil {
		return "", err
	}
	return MsgFunded, nil
}

// Distribute pays amount out of a resolved bounty to a contributor.
func (c Controller) Distribute(db weave.KVStore, issueID string, contributor weave.Address, amount uint64, caller weave.Address) (string, error) {
	err := atomically(db, func(db weave.KVStore) error {
		b, err := c.bucket.Load(db, issueID)
		if err != nil {
			return err
		}
		if err := b.CanDistribute(caller, contributor, amount); err != nil {
			return err
		}
		if err := c.transfer(db, b.Custody(), contributor, b.Asset, amount); err != nil {
			return err
		}
		b.Total -= amount
		return c.bucket.Save(db, b)
	})
	if err != nil {
		return "", err
	}
	return MsgDistributed, nil
}

// MarkResolved flags the issue as resolved.
func (c Controller) MarkResolved(db weave.KVStore, issueID string, caller weave.Address) (string, error) {
	err := atomically(db, func(db weave.KVStore) error {
		b, err := c.bucket.Load(db, issueID)
		if err != nil {
			return err
		}
		if err := b.Resolve(caller); err != nil {
			return err
		}
		return c.bucket.Save(db, b)
	})
	if err != nil {
		return "", err
	}
	return MsgResolved, nil
}

// Refund moves amount from the bounty custody back to the maintainer.
func (c Controller) Refund(db weave.KVStore, issueID string, amount uint64, caller weave.Address) (string, error) {
	err := atomically(db, func(db weave.KVStore) error {
		b, err := c.bucket.Load(db, issueID)
		if err != nil {
			return err
		}
		conf, err := loadConfig(db)
		if err != nil {
			return err
		}
		if err := b.CanRefund(caller, amount, conf); err != nil {
			return err
		}
		if err := c.transfer(db, b.Custody(), b.Maintainer, b.Asset, amount); err != nil {
			return err
		}
		b.Total -= amount
		return c.bucket.Save(db, b)
	})
	if err != nil {
		return "", err
	}
	return MsgRefunded, nil
}

// Info returns the current state of the bounty. No authorization is
// required. A bounty that was never created is reported as not initialized.
func (c Controller) Info(db weave.ReadOnlyKVStore, issueID string) (Info, error) {
	b, err := c.bucket.Load(db, issueID)
	if err != nil {
		return Info{}, err
	}
	return b.Info(), nil
}

func (c Controller) transfer(db weave.KVStore, src, dest weave.Address, kind ledger.AssetKind, amount uint64) error {
	if err := c.ledger.Transfer(db, src, dest, kind, amount); err != nil {
		return errors.Append(errors.Wrapf(ErrTransferFailed, "%d %s from %s to %s", amount, kind, src, dest), err)
	}
	return nil
}

// atomically runs fn on a cache of db. Nothing is written unless fn
// succeeds.
func atomically(db weave.KVStore, fn func(weave.KVStore) error) error {
	cache := store.BTreeCacheable{KVStore: db}.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}
