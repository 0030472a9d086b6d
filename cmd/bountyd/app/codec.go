package app

import (
	"github.com/algobounty/weave"
	"github.com/algobounty/weave/x/bounty"
	"github.com/algobounty/weave/x/ledger"
	amino "github.com/tendermint/go-amino"
)

var cdc = newCodec()

// newCodec registers every message the application routes. The registered
// names are part of the transaction wire format.
func newCodec() *amino.Codec {
	c := amino.NewCodec()
	c.RegisterInterface((*weave.Msg)(nil), nil)

	c.RegisterConcrete(&ledger.SendMsg{}, "ledger/send", nil)
	c.RegisterConcrete(&ledger.OptInMsg{}, "ledger/opt_in", nil)
	c.RegisterConcrete(&ledger.CreateAssetMsg{}, "ledger/create_asset", nil)

	c.RegisterConcrete(&bounty.CreateMsg{}, "bounty/create", nil)
	c.RegisterConcrete(&bounty.FundMsg{}, "bounty/fund", nil)
	c.RegisterConcrete(&bounty.DistributeMsg{}, "bounty/distribute", nil)
	c.RegisterConcrete(&bounty.MarkResolvedMsg{}, "bounty/resolve", nil)
	c.RegisterConcrete(&bounty.RefundMsg{}, "bounty/refund", nil)
	c.RegisterConcrete(&bounty.UpdateConfigurationMsg{}, "bounty/update_configuration", nil)

	c.Seal()
	return c
}
