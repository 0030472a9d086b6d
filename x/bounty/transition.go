package bounty

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/x/ledger"
)

// Preconditions are always tested in the same order: initialization,
// authorization, resolution state, amount and finally the balance.

// Create initializes a fresh record. The caller must declare themselves as
// the maintainer.
func (b *Bounty) Create(issueID string, kind ledger.AssetKind, maintainer, caller weave.Address) error {
	if b.Initialized {
		return errors.Wrapf(ErrAlreadyInitialized, "issue %q", b.IssueID)
	}
	if len(caller) == 0 || !caller.Equals(maintainer) {
		return errors.Wrap(errors.ErrUnauthorized, "only the maintainer can create a bounty")
	}
	if err := validIssueID(issueID); err != nil {
		return err
	}
	if err := kind.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if err := maintainer.Validate(); err != nil {
		return errors.Wrap(err, "maintainer")
	}
	*b = Bounty{
		IssueID:     issueID,
		Asset:       kind,
		Total:       0,
		Maintainer:  maintainer,
		Resolved:    false,
		Initialized: true,
	}
	return nil
}

// CanFund tests if amount can be added to the bounty. Anyone may fund.
func (b *Bounty) CanFund(amount uint64) error {
	if !b.Initialized {
		return errors.Wrapf(ErrNotInitialized, "issue %q", b.IssueID)
	}
	if b.Resolved {
		return errors.Wrap(ErrAlreadyResolved, "cannot fund a resolved bounty")
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if b.Total+amount < b.Total {
		return errors.Wrap(errors.ErrOverflow, "total bounty")
	}
	return nil
}

// CanDistribute tests if the caller can pay amount out to a contributor.
// The custody account itself is never a valid contributor.
func (b *Bounty) CanDistribute(caller, contributor weave.Address, amount uint64) error {
	if err := b.maintainerOnly(caller); err != nil {
		return err
	}
	if !b.Resolved {
		return errors.Wrap(ErrNotResolved, "payout requires a resolved issue")
	}
	if err := b.canWithdraw(amount); err != nil {
		return err
	}
	if contributor.Equals(b.Custody()) {
		return errors.Wrap(errors.ErrInput, "contributor cannot be the bounty custody")
	}
	return nil
}

// CanRefund tests if the caller can reclaim amount. Refunds after
// resolution depend on the configured policy.
func (b *Bounty) CanRefund(caller weave.Address, amount uint64, conf *Configuration) error {
	if err := b.maintainerOnly(caller); err != nil {
		return err
	}
	if b.Resolved && !conf.refundAfterResolution() {
		return errors.Wrap(ErrAlreadyResolved, "refund disabled after resolution")
	}
	return b.canWithdraw(amount)
}

// Resolve marks the issue as resolved. Resolving twice is a no-op.
func (b *Bounty) Resolve(caller weave.Address) error {
	if err := b.maintainerOnly(caller); err != nil {
		return err
	}
	b.Resolved = true
	return nil
}

func (b *Bounty) maintainerOnly(caller weave.Address) error {
	if !b.Initialized {
		return errors.Wrapf(ErrNotInitialized, "issue %q", b.IssueID)
	}
	if len(caller) == 0 || !caller.Equals(b.Maintainer) {
		return errors.Wrap(errors.ErrUnauthorized, "maintainer only")
	}
	return nil
}

func (b *Bounty) canWithdraw(amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if amount > b.Total {
		return errors.Wrapf(errors.ErrInsufficientAmount, "requested %d, bounty holds %d", amount, b.Total)
	}
	return nil
}
