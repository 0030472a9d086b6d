package app

import (
	"encoding/hex"
	"strings"

	"github.com/algobounty/weave/commands"
	"github.com/algobounty/weave/crypto"
	"github.com/algobounty/weave/x/bounty"
	"github.com/algobounty/weave/x/ledger"
	"github.com/algobounty/weave/x/sigs"
)

// we fix the private keys here for deterministic output with the same encoding
// these are not secure at all, but the only point is to check the format,
// which is easier when everything is reproduceable.
var (
	maintainerKey = makePrivKey("1234567890")
	funderKey     = makePrivKey("F00BA411")
	contributor   = makePrivKey("00CAFE00F00D").PublicKey().Address()
)

// makePrivKey repeats the string as long as needed to get 64 digits, then
// parses it as hex. It uses this repeated string as a "random" seed
// for the private key.
func makePrivKey(seed string) *crypto.PrivateKey {
	rep := 64/len(seed) + 1
	in := strings.Repeat(seed, rep)[:64]
	bin, err := hex.DecodeString(in)
	if err != nil {
		panic(err)
	}
	return crypto.PrivKeyEd25519FromSeed(bin)
}

const exampleIssue = "octo/hello#42"

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	maintainer := maintainerKey.PublicKey().Address()

	record := &bounty.Bounty{
		IssueID:     exampleIssue,
		Asset:       ledger.NativeAsset(),
		Total:       150,
		Maintainer:  maintainer,
		Initialized: true,
	}
	wallet := &ledger.Wallet{
		Native:   850,
		Holdings: []ledger.Holding{{AssetID: 7, Amount: 5000}},
	}
	user := &sigs.UserData{
		Pubkey:   funderKey.PublicKey(),
		Sequence: 17,
	}

	create := &bounty.CreateMsg{
		IssueID:    exampleIssue,
		Asset:      ledger.FungibleAsset(7),
		Maintainer: maintainer,
	}
	fund := &bounty.FundMsg{IssueID: exampleIssue, Amount: 100}
	distribute := &bounty.DistributeMsg{
		IssueID:     exampleIssue,
		Contributor: contributor,
		Amount:      120,
	}

	unsigned := &Tx{Msg: fund}
	tx := &Tx{Msg: fund}
	sig, err := sigs.SignTx(funderKey, tx, "test-123", 17)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "bounty", Obj: record},
		{Filename: "wallet", Obj: wallet},
		{Filename: "user", Obj: user},
		{Filename: "create_msg", Obj: create},
		{Filename: "fund_msg", Obj: fund},
		{Filename: "distribute_msg", Obj: distribute},
		{Filename: "unsigned_tx", Obj: unsigned},
		{Filename: "signed_tx", Obj: tx},
		{Filename: "priv_key", Obj: funderKey},
		{Filename: "pub_key", Obj: funderKey.PublicKey()},
	}
}
