package bounty

import (
	"fmt"

	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/orm"
	"github.com/algobounty/weave/x/ledger"
)

// BucketName is where we store the bounties
const BucketName = "bounty"

const maxIssueIDLength = 128

// IssueKey returns the canonical issue id of a repository issue, for
// example "octocat/hello-world#42".
func IssueKey(owner, repo string, number uint64) string {
	return fmt.Sprintf("%s/%s#%d", owner, repo, number)
}

func validIssueID(issueID string) error {
	if len(issueID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "issue id")
	}
	if len(issueID) > maxIssueIDLength {
		return errors.Wrapf(errors.ErrInput, "issue id longer than %d", maxIssueIDLength)
	}
	return nil
}

// Custody returns the address holding the value of given issue bounty.
// Nobody can sign for it; only this extension moves value out of it.
func Custody(issueID string) weave.Address {
	return weave.NewCondition("bounty", "issue", []byte(issueID)).Address()
}

// Bounty is the escrow record of a single issue.
type Bounty struct {
	IssueID     string           `json:"issue_id"`
	Asset       ledger.AssetKind `json:"asset"`
	Total       uint64           `json:"total"`
	Maintainer  weave.Address    `json:"maintainer"`
	Resolved    bool             `json:"resolved"`
	Initialized bool             `json:"initialized"`
}

var _ orm.Model = (*Bounty)(nil)

func (b *Bounty) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "IssueID", validIssueID(b.IssueID))
	errs = errors.AppendField(errs, "Asset", b.Asset.Validate())
	errs = errors.AppendField(errs, "Maintainer", b.Maintainer.Validate())
	if !b.Initialized {
		errs = errors.AppendField(errs, "Initialized", errors.ErrState)
	}
	return errs
}

func (b *Bounty) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(b)
}

func (b *Bounty) Unmarshal(raw []byte) error {
	return unmarshal(raw, b)
}

// Custody returns the address holding the bounty value.
func (b *Bounty) Custody() weave.Address {
	return Custody(b.IssueID)
}

// Info returns a read only snapshot of the bounty.
func (b *Bounty) Info() Info {
	return Info{
		IssueID:     b.IssueID,
		Total:       b.Total,
		Asset:       b.Asset,
		Maintainer:  b.Maintainer,
		Resolved:    b.Resolved,
		Initialized: b.Initialized,
		Custody:     b.Custody(),
	}
}

// Info is the public view of a bounty.
type Info struct {
	IssueID     string           `json:"issue_id"`
	Total       uint64           `json:"total"`
	Asset       ledger.AssetKind `json:"asset"`
	Maintainer  weave.Address    `json:"maintainer"`
	Resolved    bool             `json:"resolved"`
	Initialized bool             `json:"initialized"`
	Custody     weave.Address    `json:"custody"`
}

// Bucket stores bounties, using the issue id as the key.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for bounties.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Bounty{}),
	}
}

// Load returns the bounty of given issue. A record that was never created
// is returned zeroed, with Initialized set to false.
func (b Bucket) Load(db weave.ReadOnlyKVStore, issueID string) (*Bounty, error) {
	if err := validIssueID(issueID); err != nil {
		return nil, err
	}
	var bounty Bounty
	switch err := b.One(db, []byte(issueID), &bounty); {
	case err == nil:
		return &bounty, nil
	case errors.ErrNotFound.Is(err):
		return &Bounty{IssueID: issueID}, nil
	default:
		return nil, errors.Wrap(err, "cannot load bounty")
	}
}

// Save stores the bounty under its issue id.
func (b Bucket) Save(db weave.KVStore, bounty *Bounty) error {
	return b.Put(db, []byte(bounty.IssueID), bounty)
}
