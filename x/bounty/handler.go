package bounty

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/gconf"
	"github.com/algobounty/weave/store"
	"github.com/algobounty/weave/x"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createCost       int64 = 200
	fundCost         int64 = 100
	distributeCost   int64 = 100
	markResolvedCost int64 = 50
	refundCost       int64 = 100
)

// Operation names used for tags, logs and metrics.
const (
	opCreate     = "create"
	opFund       = "fund"
	opDistribute = "distribute"
	opResolve    = "resolve"
	opRefund     = "refund"
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Value is moved using given ledger.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, l Ledger) {
	h := handler{
		auth:    auth,
		control: NewController(l),
		metrics: Metrics(),
	}
	r.Handle(pathCreateMsg, CreateHandler{h})
	r.Handle(pathFundMsg, FundHandler{h})
	r.Handle(pathDistributeMsg, DistributeHandler{h})
	r.Handle(pathMarkResolvedMsg, MarkResolvedHandler{h})
	r.Handle(pathRefundMsg, RefundHandler{h})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(configPkg, &Configuration{}, auth))
}

// RegisterQuery will register the bounties as "/bounties"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("bounties", qr)
}

type handler struct {
	auth    x.Authenticator
	control Controller
	metrics *MetricsRecorder
}

// signer returns the address acting for the transaction. If the expected
// address signed it is preferred over the main signer. Nil is returned
// for unsigned transactions, the controller refuses it where it matters.
func (h handler) signer(ctx weave.Context, expected weave.Address) weave.Address {
	if len(expected) != 0 && h.auth.HasAddress(ctx, expected) {
		return expected
	}
	if main := x.MainSigner(ctx, h.auth); main != nil {
		return main.Address()
	}
	return nil
}

// maintainerSigner returns the stored maintainer of the bounty if they
// signed the transaction, the main signer otherwise.
func (h handler) maintainerSigner(ctx weave.Context, db weave.ReadOnlyKVStore, issueID string) (weave.Address, error) {
	info, err := h.control.Info(db, issueID)
	if err != nil {
		return nil, err
	}
	return h.signer(ctx, info.Maintainer), nil
}

// dryRun executes the operation on a throw away cache so that check fails
// exactly when deliver would.
func (h handler) dryRun(db weave.KVStore, op func(weave.KVStore) (string, error)) error {
	cache := store.BTreeCacheable{KVStore: db}.CacheWrap()
	defer cache.Discard()
	_, err := op(cache)
	return err
}

func (h handler) deliver(
	ctx weave.Context,
	db weave.KVStore,
	action, issueID string,
	moved uint64,
	op func(weave.KVStore) (string, error),
) (*weave.DeliverResult, error) {
	confirmation, err := op(db)
	h.metrics.ObserveOperation(action, err)
	if err != nil {
		return nil, err
	}
	info, err := h.control.Info(db, issueID)
	if err != nil {
		return nil, errors.Wrap(err, "read bounty")
	}
	if moved > 0 {
		h.metrics.ObserveMoved(action, info.Asset.String(), moved)
	}
	weave.GetLogger(ctx).Info(confirmation,
		"issue", issueID, "action", action, "total", info.Total, "resolved", info.Resolved)
	return &weave.DeliverResult{
		Log: confirmation,
		Tags: []common.KVPair{
			weave.Tag("bounty.issue", issueID),
			weave.Tag("bounty.action", action),
		},
	}, nil
}

// CreateHandler initializes a bounty.
type CreateHandler struct {
	handler
}

var _ weave.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	op, _, err := h.prepare(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.dryRun(db, op); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createCost}, nil
}

func (h CreateHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	op, msg, err := h.prepare(ctx, tx)
	if err != nil {
		return nil, err
	}
	return h.deliver(ctx, db, opCreate, msg.IssueID, 0, op)
}

func (h CreateHandler) prepare(ctx weave.Context, tx weave.Tx) (func(weave.KVStore) (string, error), *CreateMsg, error) {
	var msg CreateMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := h.signer(ctx, msg.Maintainer)
	op := func(db weave.KVStore) (string, error) {
		return h.control.Create(db, msg.IssueID, msg.Asset, msg.Maintainer, caller)
	}
	return op, &msg, nil
}

// FundHandler moves value of the main signer into a bounty.
type FundHandler struct {
	handler
}

var _ weave.Handler = FundHandler{}

func (h FundHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	op, _, err := h.prepare(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.dryRun(db, op); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: fundCost}, nil
}

func (h FundHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	op, msg, err := h.prepare(ctx, tx)
	if err != nil {
		return nil, err
	}
	return h.deliver(ctx, db, opFund, msg.IssueID, msg.Amount, op)
}

func (h FundHandler) prepare(ctx weave.Context, tx weave.Tx) (func(weave.KVStore) (string, error), *FundMsg, error) {
	var msg FundMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	// Value is taken from the funder, so a signature is always required.
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	op := func(db weave.KVStore) (string, error) {
		return h.control.Fund(db, msg.IssueID, msg.Amount, caller)
	}
	return op, &msg, nil
}

// DistributeHandler pays contributors out of a resolved bounty.
type DistributeHandler struct {
	handler
}

var _ weave.Handler = DistributeHandler{}

func (h DistributeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	op, _, err := h.prepare(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.dryRun(db, op); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: distributeCost}, nil
}

func (h DistributeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	op, msg, err := h.prepare(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return h.deliver(ctx, db, opDistribute, msg.IssueID, msg.Amount, op)
}

func (h DistributeHandler) prepare(ctx weave.Context, db weave.ReadOnlyKVStore, tx weave.Tx) (func(weave.KVStore) (string, error), *DistributeMsg, error) {
	var msg DistributeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := h.maintainerSigner(ctx, db, msg.IssueID)
	if err != nil {
		return nil, nil, err
	}
	op := func(db weave.KVStore) (string, error) {
		return h.control.Distribute(db, msg.IssueID, msg.Contributor, msg.Amount, caller)
	}
	return op, &msg, nil
}

// MarkResolvedHandler flags the issue of a bounty as resolved.
type MarkResolvedHandler struct {
	handler
}

var _ weave.Handler = MarkResolvedHandler{}

func (h MarkResolvedHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	op, _, err := h.prepare(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.dryRun(db, op); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: markResolvedCost}, nil
}

func (h MarkResolvedHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	op, msg, err := h.prepare(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return h.deliver(ctx, db, opResolve, msg.IssueID, 0, op)
}

func (h MarkResolvedHandler) prepare(ctx weave.Context, db weave.ReadOnlyKVStore, tx weave.Tx) (func(weave.KVStore) (string, error), *MarkResolvedMsg, error) {
	var msg MarkResolvedMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := h.maintainerSigner(ctx, db, msg.IssueID)
	if err != nil {
		return nil, nil, err
	}
	op := func(db weave.KVStore) (string, error) {
		return h.control.MarkResolved(db, msg.IssueID, caller)
	}
	return op, &msg, nil
}

// RefundHandler returns value of a bounty to its maintainer.
type RefundHandler struct {
	handler
}

var _ weave.Handler = RefundHandler{}

func (h RefundHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	op, _, err := h.prepare(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.dryRun(db, op); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: refundCost}, nil
}

func (h RefundHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	op, msg, err := h.prepare(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return h.deliver(ctx, db, opRefund, msg.IssueID, msg.Amount, op)
}

func (h RefundHandler) prepare(ctx weave.Context, db weave.ReadOnlyKVStore, tx weave.Tx) (func(weave.KVStore) (string, error), *RefundMsg, error) {
	var msg RefundMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := h.maintainerSigner(ctx, db, msg.IssueID)
	if err != nil {
		return nil, nil, err
	}
	op := func(db weave.KVStore) (string, error) {
		return h.control.Refund(db, msg.IssueID, msg.Amount, caller)
	}
	return op, &msg, nil
}
