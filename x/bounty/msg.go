package bounty

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/x/ledger"
)

const (
	pathCreateMsg              = "bounty/create"
	pathFundMsg                = "bounty/fund"
	pathDistributeMsg          = "bounty/distribute"
	pathMarkResolvedMsg        = "bounty/resolve"
	pathRefundMsg              = "bounty/refund"
	pathUpdateConfigurationMsg = "bounty/update_configuration"
)

// Amounts are not validated here. A zero amount is refused by the
// controller, once the state related preconditions were tested.

// CreateMsg creates a bounty for an issue. The maintainer must sign.
type CreateMsg struct {
	IssueID    string           `json:"issue_id"`
	Asset      ledger.AssetKind `json:"asset"`
	Maintainer weave.Address    `json:"maintainer"`
}

var _ weave.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "IssueID", validIssueID(m.IssueID))
	errs = errors.AppendField(errs, "Asset", m.Asset.Validate())
	errs = errors.AppendField(errs, "Maintainer", m.Maintainer.Validate())
	return errs
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return unmarshal(raw, m)
}

// FundMsg adds value of the main signer to a bounty.
type FundMsg struct {
	IssueID string `json:"issue_id"`
	Amount  uint64 `json:"amount"`
}

var _ weave.Msg = (*FundMsg)(nil)

func (FundMsg) Path() string {
	return pathFundMsg
}

func (m *FundMsg) Validate() error {
	return errors.AppendField(nil, "IssueID", validIssueID(m.IssueID))
}

func (m *FundMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *FundMsg) Unmarshal(raw []byte) error {
	return unmarshal(raw, m)
}

// DistributeMsg pays a contributor out of a resolved bounty.
type DistributeMsg struct {
	IssueID     string        `json:"issue_id"`
	Contributor weave.Address `json:"contributor"`
	Amount      uint64        `json:"amount"`
}

var _ weave.Msg = (*DistributeMsg)(nil)

func (DistributeMsg) Path() string {
	return pathDistributeMsg
}

func (m *DistributeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "IssueID", validIssueID(m.IssueID))
	errs = errors.AppendField(errs, "Contributor", m.Contributor.Validate())
	return errs
}

func (m *DistributeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *DistributeMsg) Unmarshal(raw []byte) error {
	return unmarshal(raw, m)
}

// MarkResolvedMsg flags the issue of a bounty as resolved.
type MarkResolvedMsg struct {
	IssueID string `json:"issue_id"`
}

var _ weave.Msg = (*MarkResolvedMsg)(nil)

func (MarkResolvedMsg) Path() string {
	return pathMarkResolvedMsg
}

func (m *MarkResolvedMsg) Validate() error {
	return errors.AppendField(nil, "IssueID", validIssueID(m.IssueID))
}

func (m *MarkResolvedMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *MarkResolvedMsg) Unmarshal(raw []byte) error {
	return unmarshal(raw, m)
}

// RefundMsg returns value of a bounty to its maintainer.
type RefundMsg struct {
	IssueID string `json:"issue_id"`
	Amount  uint64 `json:"amount"`
}

var _ weave.Msg = (*RefundMsg)(nil)

func (RefundMsg) Path() string {
	return pathRefundMsg
}

func (m *RefundMsg) Validate() error {
	return errors.AppendField(nil, "IssueID", validIssueID(m.IssueID))
}

func (m *RefundMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *RefundMsg) Unmarshal(raw []byte) error {
	return unmarshal(raw, m)
}

// UpdateConfigurationMsg patches the extension configuration. Only non zero
// fields of the patch are applied.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate will skip any zero fields and validate the set ones
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return nil
	}
	return m.Patch.Validate()
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return unmarshal(raw, m)
}
