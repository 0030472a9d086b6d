package ledger

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/x"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	sendTxCost        int64 = 100
	optInTxCost       int64 = 50
	createAssetTxCost int64 = 200
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
	r.Handle(pathOptInMsg, NewOptInHandler(auth, control))
	r.Handle(pathCreateAssetMsg, NewCreateAssetHandler(auth, control))
}

// RegisterQuery will register the wallets as "/wallets" and the assets as
// "/assets"
func RegisterQuery(qr weave.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
	NewAssetBucket().Register("assets", qr)
}

// SendHandler will handle sending value
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ weave.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the value from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(store, msg.Source, msg.Destination, msg.Asset, msg.Amount); err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Debug("value sent",
		"src", msg.Source, "dest", msg.Destination, "asset", msg.Asset.String(), "amount", msg.Amount)
	return &weave.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx weave.Context, tx weave.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}

// OptInHandler will handle asset opt in
type OptInHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ weave.Handler = OptInHandler{}

// NewOptInHandler creates a handler for OptInMsg
func NewOptInHandler(auth x.Authenticator, control Controller) OptInHandler {
	return OptInHandler{
		auth:    auth,
		control: control,
	}
}

func (h OptInHandler) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: optInTxCost}, nil
}

func (h OptInHandler) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.OptIn(store, msg.Account, msg.Asset); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h OptInHandler) validate(ctx weave.Context, tx weave.Tx) (*OptInMsg, error) {
	var msg OptInMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Account) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}

// CreateAssetHandler registers new fungible assets.
type CreateAssetHandler struct {
	auth    x.Authenticator
	control Controller
	assets  AssetBucket
}

var _ weave.Handler = CreateAssetHandler{}

// NewCreateAssetHandler creates a handler for CreateAssetMsg
func NewCreateAssetHandler(auth x.Authenticator, control Controller) CreateAssetHandler {
	return CreateAssetHandler{
		auth:    auth,
		control: control,
		assets:  NewAssetBucket(),
	}
}

func (h CreateAssetHandler) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createAssetTxCost}, nil
}

func (h CreateAssetHandler) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	if err := h.assets.Create(store, &msg.Asset); err != nil {
		return nil, errors.Wrap(err, "create asset")
	}
	kind := FungibleAsset(msg.Asset.ID)
	if msg.Supply > 0 {
		err = h.control.Issue(store, msg.Asset.Creator, kind, msg.Supply)
	} else {
		err = h.control.OptIn(store, msg.Asset.Creator, kind)
	}
	if err != nil {
		return nil, errors.Wrap(err, "issue supply")
	}
	return &weave.DeliverResult{
		Data: AssetKey(msg.Asset.ID),
		Tags: []common.KVPair{weave.Tag("asset", kind.String())},
	}, nil
}

func (h CreateAssetHandler) validate(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*CreateAssetMsg, error) {
	var msg CreateAssetMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Asset.Creator) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "creator signature missing")
	}
	// Asset can be registered only once and must not be updated.
	if err := h.assets.Has(store, AssetKey(msg.Asset.ID)); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "asset %d", msg.Asset.ID)
	}
	return &msg, nil
}
