/*
Package app links together all the various components to construct the
multidist ledger application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/app"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/store/iavl"
	"github.com/iov-one/multidist/x"
	"github.com/iov-one/multidist/x/cash"
	"github.com/iov-one/multidist/x/currency"
	"github.com/iov-one/multidist/x/ledger"
	"github.com/iov-one/multidist/x/sigs"
	"github.com/iov-one/multidist/x/utils"
)

// Name is reported by the abci Info call.
const Name = "multidist"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery. Metrics may be nil.
func Chain(metrics *utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewActionTagger(),
		// a failed message must not leave partial writes, the nonce
		// increment of the signature check is kept
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns the router dispatching all messages supported by the
// application.
func Router(authFn x.Authenticator) *app.Router {
	ctrl := cash.NewController(cash.NewBucket())
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, ctrl)
	currency.RegisterRoutes(r, authFn)
	ledger.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/wallets", "/tokens", "/auth" and the ledger records.
func QueryRouter() multidist.QueryRouter {
	r := multidist.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		currency.RegisterQuery,
		sigs.RegisterQuery,
		ledger.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(metrics *utils.Metrics) multidist.Handler {
	return Chain(metrics).WithHandler(Router(Authenticator()))
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() multidist.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		&currency.Initializer{},
		ledger.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(h multidist.Handler, tx multidist.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(Name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path keeps everything in memory.
func CommitKVStore(dbPath string) (multidist.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
