/*
Package app links together all the various components
to construct the bountyd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/algobounty/weave"
	"github.com/algobounty/weave/app"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/store/iavl"
	"github.com/algobounty/weave/x"
	"github.com/algobounty/weave/x/bounty"
	"github.com/algobounty/weave/x/ledger"
	"github.com/algobounty/weave/x/sigs"
	"github.com/algobounty/weave/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported by the ABCI Info call.
const Name = "bountyd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, tagging and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment the nonce even if the
		// message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching ledger and bounty messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	funds := ledger.NewController()
	ledger.RegisterRoutes(r, authFn, funds)
	bounty.RegisterRoutes(r, authFn, funds)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/", "/auth", "/wallets", "/assets" and "/bounties"
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	r.RegisterAll(
		app.RegisterRawQuery,
		sigs.RegisterQuery,
		ledger.RegisterQuery,
		bounty.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() weave.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Initializers returns all genesis initializers, in the order they must
// run.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		ledger.Initializer{},
		bounty.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(h weave.Handler, tx weave.TxDecoder, kv weave.CommitKVStore, debug bool) (app.BaseApp, error) {
	store, err := app.NewStoreApp(Name, kv, QueryRouter(), context.Background())
	if err != nil {
		return app.BaseApp{}, err
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path gives an in memory store.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewCommitStoreFromDB(dbm.NewMemDB()), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}

// GenerateApp creates the application stored under the home directory.
// An empty home keeps the state in memory.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "bounty.db")
	}
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	application, err := Application(Stack(), TxDecoder, kv, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}
