/*
Package client provides typed access to a running multidist node. It talks
to tendermint over its rpc interface, submits transactions and decodes the
ledger records returned by queries.
*/
package client

import (
	"context"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
)

// Client is a tendermint client wrapped to provide
// simple access to the basic data structures used in multidist.
//
// Basic accessors are declared here. Typed queries build on top of them.
type Client struct {
	conn rpcclient.ABCIClient
}

// NewClient wraps a Client around an existing tendermint connection.
func NewClient(conn rpcclient.ABCIClient) *Client {
	return &Client{conn: conn}
}

// SubmitTx will submit the tx to the mempool and return once it passed
// the check. It does not wait for the tx to be included in a block.
func (c *Client) SubmitTx(ctx context.Context, tx multidist.Tx) (TransactionID, error) {
	bz, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	res, err := c.conn.BroadcastTxSync(bz)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "submit tx: %s", err)
	}

	// a checktx error is handled like any other error... didn't make it into mempool... will not make it into block
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return res.Hash, nil
}

// CommitTx will block on both Check and Deliver, returning when the tx is
// in a block. A failed check is returned as an error, a failed deliver is
// reported in the result.
func (c *Client) CommitTx(ctx context.Context, tx multidist.Tx) (*CommitResult, error) {
	bz, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	res, err := c.conn.BroadcastTxCommit(bz)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "commit tx: %s", err)
	}
	if res.CheckTx.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.CheckTx.Code, res.CheckTx.Log)
	}
	result, err := multidist.ParseDeliverOrError(res.DeliverTx)
	return &CommitResult{
		ID:     res.Hash,
		Height: res.Height,
		Result: result,
		Err:    err,
	}, nil
}

// Query is meant to mirror the abci query interface exactly. A network
// failure is reported with the code of ErrNetwork.
func (c *Client) Query(query RequestQuery) ResponseQuery {
	res, err := c.conn.ABCIQueryWithOptions(query.Path, query.Data, rpcclient.ABCIQueryOptions{Height: query.Height, Prove: query.Prove})
	if err != nil {
		code, log := errors.ABCIInfo(errors.Wrap(errors.ErrNetwork, err.Error()), false)
		return ResponseQuery{
			Code: code,
			Log:  log,
		}
	}
	return res.Response
}
