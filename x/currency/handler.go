package currency

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/x"
)

const newTokenInfoCost = 100

// RegisterQuery will register the registry bucket as "/tokens".
func RegisterQuery(qr multidist.QueryRouter) {
	NewTokenInfoBucket().Register("tokens", qr)
}

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r multidist.Registry, auth x.Authenticator) {
	r.Handle(pathCreateMsg, newCreateTokenInfoHandler(auth))
}

func newCreateTokenInfoHandler(auth x.Authenticator) multidist.Handler {
	return &createTokenInfoHandler{
		auth:   auth,
		bucket: NewTokenInfoBucket(),
	}
}

type createTokenInfoHandler struct {
	auth   x.Authenticator
	bucket *TokenInfoBucket
}

func (h *createTokenInfoHandler) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multidist.CheckResult{GasAllocated: newTokenInfoCost}, nil
}

func (h *createTokenInfoHandler) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	t := &TokenInfo{
		Metadata: &multidist.Metadata{Schema: 1},
		Name:     msg.Name,
		Owner:    owner,
	}
	if err := h.bucket.Create(db, msg.Ticker, t); err != nil {
		return nil, err
	}
	return &multidist.DeliverResult{Data: []byte(msg.Ticker)}, nil
}

func (h *createTokenInfoHandler) validate(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*CreateMsg, multidist.Address, error) {
	var msg CreateMsg
	if err := multidist.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	var owner multidist.Address
	if msg.Mintable {
		owner = signer.Address()
	}

	// Token can be registered only once and must not be updated.
	switch err := h.bucket.Has(db, []byte(msg.Ticker)); {
	case err == nil:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "ticker %s", msg.Ticker)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	return &msg, owner, nil
}
