package app

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx to the storage and query
// functionality of StoreApp.
type BaseApp struct {
	*StoreApp
	decoder multidist.TxDecoder
	handler multidist.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(store *StoreApp, decoder multidist.TxDecoder, handler multidist.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return multidist.DeliverTxError(err, b.debug)
	}
	ctx := multidist.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", multidist.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return multidist.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return multidist.CheckTxError(err, b.debug)
	}
	ctx := multidist.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", multidist.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return multidist.CheckOrError(res, err, b.debug)
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx multidist.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}
