package ledger

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
)

const (
	pathSendMsg        = "ledger/send"
	pathOptInMsg       = "ledger/opt_in"
	pathCreateAssetMsg = "ledger/create_asset"

	maxMemoSize int = 128
)

// SendMsg moves value between two accounts. Source must sign.
type SendMsg struct {
	Source      weave.Address `json:"source"`
	Destination weave.Address `json:"destination"`
	Asset       AssetKind     `json:"asset"`
	Amount      uint64        `json:"amount"`
	Memo        string        `json:"memo"`
}

var _ weave.Msg = (*SendMsg)(nil)

func (SendMsg) Path() string {
	return pathSendMsg
}

func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "Asset", m.Asset.Validate())
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "memo too long"))
	}
	return errs
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return unmarshal(raw, m)
}

// OptInMsg allows an account to receive a fungible asset. Account must
// sign.
type OptInMsg struct {
	Account weave.Address `json:"account"`
	Asset   AssetKind     `json:"asset"`
}

var _ weave.Msg = (*OptInMsg)(nil)

func (OptInMsg) Path() string {
	return pathOptInMsg
}

func (m *OptInMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Account", m.Account.Validate())
	errs = errors.AppendField(errs, "Asset", m.Asset.Validate())
	return errs
}

func (m *OptInMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *OptInMsg) Unmarshal(raw []byte) error {
	return unmarshal(raw, m)
}

// CreateAssetMsg registers a new fungible asset and issues its whole supply
// to the creator.
type CreateAssetMsg struct {
	Asset  Asset  `json:"asset"`
	Supply uint64 `json:"supply"`
}

var _ weave.Msg = (*CreateAssetMsg)(nil)

func (CreateAssetMsg) Path() string {
	return pathCreateAssetMsg
}

func (m *CreateAssetMsg) Validate() error {
	errs := m.Asset.Validate()
	if len(m.Asset.Creator) == 0 {
		errs = errors.AppendField(errs, "Creator", errors.ErrEmpty)
	}
	return errs
}

func (m *CreateAssetMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateAssetMsg) Unmarshal(raw []byte) error {
	return unmarshal(raw, m)
}
