package ledger

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/coin"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/orm"
	"github.com/iov-one/multidist/x"
	"github.com/iov-one/multidist/x/cash"
	"github.com/iov-one/multidist/x/currency"
	common "github.com/tendermint/tendermint/libs/common"
)

const (
	createCollectionCost   = 300
	lowerCapCost           = 50
	withdrawCost           = 100
	createDistributionCost = 200
	fundDistributionCost   = 100
	commitCost             = 150
	claimCost              = 100
)

// RegisterQuery registers all ledger buckets with the query router.
func RegisterQuery(qr multidist.QueryRouter) {
	NewCollectionBucket().Register("collections", qr)
	NewCollectionUserBucket().Register("collections/users", qr)
	NewDistributionBucket().Register("distributions", qr)
	NewDistributionUserBucket().Register("distributions/users", qr)
}

// RegisterRoutes registers handlers for all ledger messages.
func RegisterRoutes(r multidist.Registry, auth x.Authenticator, ctrl cash.Controller) {
	s := newBuckets()
	r.Handle(pathCreateCollection, &CreateCollectionHandler{auth: auth, s: s})
	r.Handle(pathLowerCap, &LowerCapHandler{auth: auth, s: s})
	r.Handle(pathWithdraw, &WithdrawHandler{auth: auth, s: s, ctrl: ctrl})
	r.Handle(pathCreateDistribution, &CreateDistributionHandler{auth: auth, s: s})
	r.Handle(pathFundDistribution, &FundDistributionHandler{auth: auth, s: s, ctrl: ctrl})
	r.Handle(pathCommit, &CommitHandler{auth: auth, s: s, ctrl: ctrl})
	r.Handle(pathClaim, &ClaimHandler{auth: auth, s: s, ctrl: ctrl})
}

// buckets groups all ledger buckets.
type buckets struct {
	collections   orm.ModelBucket
	collUsers     orm.ModelBucket
	distributions orm.ModelBucket
	distUsers     orm.ModelBucket
}

func newBuckets() buckets {
	return buckets{
		collections:   NewCollectionBucket(),
		collUsers:     NewCollectionUserBucket(),
		distributions: NewDistributionBucket(),
		distUsers:     NewDistributionUserBucket(),
	}
}

func (s buckets) collection(db multidist.ReadOnlyKVStore, key multidist.Address) (*Collection, error) {
	var c Collection
	if err := s.collections.One(db, key, &c); err != nil {
		return nil, errors.Wrap(err, "cannot load collection")
	}
	return &c, nil
}

func (s buckets) distribution(db multidist.ReadOnlyKVStore, key multidist.Address) (*Distribution, error) {
	var d Distribution
	if err := s.distributions.One(db, key, &d); err != nil {
		return nil, errors.Wrap(err, "cannot load distribution")
	}
	return &d, nil
}

// CreateCollectionHandler creates collections and registers their receipt
// asset.
type CreateCollectionHandler struct {
	auth x.Authenticator
	s    buckets
}

var _ multidist.Handler = (*CreateCollectionHandler)(nil)

func (h *CreateCollectionHandler) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multidist.CheckResult{GasAllocated: createCollectionCost}, nil
}

func (h *CreateCollectionHandler) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.DeliverResult, error) {
	msg, authority, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key := CollectionKey(authority, msg.AssetID, msg.Discriminator)
	c := &Collection{
		Metadata:       &multidist.Metadata{Schema: 1},
		Authority:      authority,
		AssetID:        msg.AssetID,
		VaultAddress:   CollectionVault(key),
		ReceiptAssetID: ReceiptAssetID(key),
		MaxCollectable: msg.MaxCollectable,
		Discriminator:  msg.Discriminator,
	}
	if err := currency.Register(db, c.ReceiptAssetID, "collection receipt", c.VaultAddress); err != nil {
		return nil, errors.Wrap(err, "cannot register receipt asset")
	}
	if err := h.s.collections.Put(db, key, c); err != nil {
		return nil, errors.Wrap(err, "cannot store collection")
	}
	multidist.GetLogger(ctx).Debug("collection created",
		"collection", key, "asset", c.AssetID, "max", c.MaxCollectable)
	return &multidist.DeliverResult{
		Data: key,
		Tags: []common.KVPair{
			multidist.Tag("ledger.collection", []byte(key.String())),
		},
	}, nil
}

func (h *CreateCollectionHandler) validate(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*CreateCollectionMsg, multidist.Address, error) {
	var msg CreateCollectionMsg
	if err := multidist.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	authority, err := actor(ctx, h.auth, msg.Authority)
	if err != nil {
		return nil, nil, err
	}
	key := CollectionKey(authority, msg.AssetID, msg.Discriminator)
	switch err := h.s.collections.Has(db, key); {
	case err == nil:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "collection %s", key)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	switch _, err := currency.NewTokenInfoBucket().Get(db, ReceiptAssetID(key)); {
	case err == nil:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "receipt ticker %s", ReceiptAssetID(key))
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	return &msg, authority, nil
}

// LowerCapHandler decreases the cap of a collection.
type LowerCapHandler struct {
	auth x.Authenticator
	s    buckets
}

var _ multidist.Handler = (*LowerCapHandler)(nil)

func (h *LowerCapHandler) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multidist.CheckResult{GasAllocated: lowerCapCost}, nil
}

func (h *LowerCapHandler) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.DeliverResult, error) {
	msg, c, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	prev := c.MaxCollectable
	c.MaxCollectable = msg.NewMaxCollectable
	if err := h.s.collections.Put(db, msg.CollectionID, c); err != nil {
		return nil, errors.Wrap(err, "cannot store collection")
	}
	multidist.GetLogger(ctx).Debug("collection cap lowered",
		"collection", msg.CollectionID, "from", prev, "to", c.MaxCollectable)
	return &multidist.DeliverResult{}, nil
}

func (h *LowerCapHandler) validate(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*LowerCapMsg, *Collection, error) {
	var msg LowerCapMsg
	if err := multidist.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	c, err := h.s.collection(db, msg.CollectionID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, c.Authority) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "collection authority signature missing")
	}
	if msg.NewMaxCollectable >= c.MaxCollectable {
		return nil, nil, errors.Wrapf(errors.ErrConfiguration, "new cap %d must be lower than %d", msg.NewMaxCollectable, c.MaxCollectable)
	}
	if msg.NewMaxCollectable == 0 {
		return nil, nil, errors.Wrap(errors.ErrConfiguration, "cap must be greater than zero")
	}
	if msg.NewMaxCollectable < c.LifetimeCollected {
		return nil, nil, errors.Wrapf(errors.ErrConfiguration, "new cap %d below collected %d", msg.NewMaxCollectable, c.LifetimeCollected)
	}
	return &msg, c, nil
}

// WithdrawHandler moves the collected funds to the collection authority.
type WithdrawHandler struct {
	auth x.Authenticator
	s    buckets
	ctrl cash.Controller
}

var _ multidist.Handler = (*WithdrawHandler)(nil)

func (h *WithdrawHandler) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multidist.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h *WithdrawHandler) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.DeliverResult, error) {
	msg, c, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	balance, err := h.ctrl.Balance(db, c.VaultAddress)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read vault balance")
	}
	amount := balance.Get(c.AssetID)
	if amount.IsPositive() {
		if err := h.ctrl.MoveCoins(db, c.VaultAddress, c.Authority, amount); err != nil {
			return nil, errors.Wrap(err, "cannot withdraw")
		}
	}
	multidist.GetLogger(ctx).Debug("collection withdrawn",
		"collection", msg.CollectionID, "amount", amount.Amount)
	return &multidist.DeliverResult{
		Data: uint64Bytes(amount.Amount),
		Tags: []common.KVPair{
			multidist.Tag("ledger.collection", []byte(msg.CollectionID.String())),
		},
	}, nil
}

func (h *WithdrawHandler) validate(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*WithdrawMsg, *Collection, error) {
	var msg WithdrawMsg
	if err := multidist.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	c, err := h.s.collection(db, msg.CollectionID)
	if err != nil {
		return nil, nil, err
	}
	if err := expect(msg.ExpectedVault, c.VaultAddress, msg.AssetID, c.AssetID); err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, c.Authority) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "collection authority signature missing")
	}
	return &msg, c, nil
}

// CreateDistributionHandler attaches a new reward pool to a collection.
type CreateDistributionHandler struct {
	auth x.Authenticator
	s    buckets
}

var _ multidist.Handler = (*CreateDistributionHandler)(nil)

func (h *CreateDistributionHandler) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multidist.CheckResult{GasAllocated: createDistributionCost}, nil
}

func (h *CreateDistributionHandler) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key := DistributionKey(msg.CollectionID, msg.AssetID)
	d := &Distribution{
		Metadata:     &multidist.Metadata{Schema: 1},
		Collection:   msg.CollectionID,
		AssetID:      msg.AssetID,
		VaultAddress: DistributionVault(key),
	}
	if err := h.s.distributions.Put(db, key, d); err != nil {
		return nil, errors.Wrap(err, "cannot store distribution")
	}
	multidist.GetLogger(ctx).Debug("distribution created",
		"distribution", key, "collection", d.Collection, "asset", d.AssetID)
	return &multidist.DeliverResult{
		Data: key,
		Tags: []common.KVPair{
			multidist.Tag("ledger.collection", []byte(msg.CollectionID.String())),
			multidist.Tag("ledger.distribution", []byte(key.String())),
		},
	}, nil
}

func (h *CreateDistributionHandler) validate(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*CreateDistributionMsg, error) {
	var msg CreateDistributionMsg
	if err := multidist.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	c, err := h.s.collection(db, msg.CollectionID)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, c.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "collection authority signature missing")
	}
	key := DistributionKey(msg.CollectionID, msg.AssetID)
	switch err := h.s.distributions.Has(db, key); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "distribution %s", key)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	return &msg, nil
}

// FundDistributionHandler adds rewards to a distribution vault.
type FundDistributionHandler struct {
	auth x.Authenticator
	s    buckets
	ctrl cash.Controller
}

var _ multidist.Handler = (*FundDistributionHandler)(nil)

func (h *FundDistributionHandler) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multidist.CheckResult{GasAllocated: fundDistributionCost}, nil
}

func (h *FundDistributionHandler) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.DeliverResult, error) {
	msg, d, funder, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if d.LifetimeFunded, err = add64(d.LifetimeFunded, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "lifetime funded")
	}
	if err := h.ctrl.MoveCoins(db, funder, d.VaultAddress, coin.NewCoin(msg.Amount, d.AssetID)); err != nil {
		return nil, errors.Wrap(err, "cannot fund")
	}
	if err := h.s.distributions.Put(db, msg.DistributionID, d); err != nil {
		return nil, errors.Wrap(err, "cannot store distribution")
	}
	multidist.GetLogger(ctx).Debug("distribution funded",
		"distribution", msg.DistributionID, "amount", msg.Amount, "funded", d.LifetimeFunded)
	return &multidist.DeliverResult{
		Tags: []common.KVPair{
			multidist.Tag("ledger.distribution", []byte(msg.DistributionID.String())),
			multidist.Tag("ledger.funder", []byte(funder.String())),
		},
	}, nil
}

func (h *FundDistributionHandler) validate(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*FundDistributionMsg, *Distribution, multidist.Address, error) {
	var msg FundDistributionMsg
	if err := multidist.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	d, err := h.s.distribution(db, msg.DistributionID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := expect(msg.ExpectedVault, d.VaultAddress, msg.AssetID, d.AssetID); err != nil {
		return nil, nil, nil, err
	}
	funder, err := actor(ctx, h.auth, msg.Funder)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, d, funder, nil
}

// CommitHandler deposits into a collection and mints the receipt asset.
type CommitHandler struct {
	auth x.Authenticator
	s    buckets
	ctrl cash.Controller
}

var _ multidist.Handler = (*CommitHandler)(nil)

func (h *CommitHandler) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.CheckResult, error) {
	if _, err := h.prepare(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multidist.CheckResult{GasAllocated: commitCost}, nil
}

func (h *CommitHandler) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.DeliverResult, error) {
	p, err := h.prepare(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if p.amount > 0 {
		if err := h.ctrl.MoveCoins(db, p.user.Depositor, p.c.VaultAddress, coin.NewCoin(p.amount, p.c.AssetID)); err != nil {
			return nil, errors.Wrap(err, "cannot deposit")
		}
		receipt := coin.NewCoin(p.amount, p.c.ReceiptAssetID)
		if err := h.ctrl.CoinMint(db, p.user.Depositor, receipt, p.c.VaultAddress); err != nil {
			return nil, errors.Wrap(err, "cannot mint receipt")
		}
	}
	if err := h.s.collections.Put(db, p.user.Collection, p.c); err != nil {
		return nil, errors.Wrap(err, "cannot store collection")
	}
	if err := h.s.collUsers.Put(db, userKey(p.user.Collection, p.user.Depositor), p.user); err != nil {
		return nil, errors.Wrap(err, "cannot store deposit")
	}
	multidist.GetLogger(ctx).Debug("committed",
		"collection", p.user.Collection, "depositor", p.user.Depositor,
		"amount", p.amount, "collected", p.c.LifetimeCollected)
	return &multidist.DeliverResult{
		Tags: []common.KVPair{
			multidist.Tag("ledger.collection", []byte(p.user.Collection.String())),
			multidist.Tag("ledger.depositor", []byte(p.user.Depositor.String())),
		},
	}, nil
}

type commitment struct {
	c      *Collection
	user   *CollectionUserState
	amount uint64
}

// prepare computes the state after the commit. The collection and the user
// state returned are not yet stored.
func (h *CommitHandler) prepare(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*commitment, error) {
	var msg CommitMsg
	if err := multidist.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	c, err := h.s.collection(db, msg.CollectionID)
	if err != nil {
		return nil, err
	}
	if err := expect(msg.ExpectedVault, c.VaultAddress, msg.AssetID, c.AssetID); err != nil {
		return nil, err
	}
	depositor, err := actor(ctx, h.auth, msg.Depositor)
	if err != nil {
		return nil, err
	}

	user := &CollectionUserState{
		Metadata:   &multidist.Metadata{Schema: 1},
		Collection: msg.CollectionID,
		Depositor:  depositor,
	}
	switch err := h.s.collUsers.One(db, userKey(msg.CollectionID, depositor), user); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return nil, errors.Wrap(err, "cannot load deposit")
	}

	if c.LifetimeCollected, err = add64(c.LifetimeCollected, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "lifetime collected")
	}
	if user.DepositedAmount, err = add64(user.DepositedAmount, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "deposited amount")
	}
	if c.LifetimeCollected > c.MaxCollectable {
		return nil, errors.Wrapf(errors.ErrCapacity, "collecting %d would exceed cap %d", msg.Amount, c.MaxCollectable)
	}
	return &commitment{c: c, user: user, amount: msg.Amount}, nil
}

// ClaimHandler pays out the rewards owed to a depositor.
type ClaimHandler struct {
	auth x.Authenticator
	s    buckets
	ctrl cash.Controller
}

var _ multidist.Handler = (*ClaimHandler)(nil)

func (h *ClaimHandler) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.CheckResult, error) {
	if _, err := h.prepare(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multidist.CheckResult{GasAllocated: claimCost}, nil
}

func (h *ClaimHandler) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.DeliverResult, error) {
	p, err := h.prepare(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if p.toPay > 0 {
		if err := h.ctrl.MoveCoins(db, p.d.VaultAddress, p.user.Depositor, coin.NewCoin(p.toPay, p.d.AssetID)); err != nil {
			return nil, errors.Wrap(err, "cannot pay out")
		}
	}
	if err := h.s.distributions.Put(db, p.user.Distribution, p.d); err != nil {
		return nil, errors.Wrap(err, "cannot store distribution")
	}
	if err := h.s.distUsers.Put(db, userKey(p.user.Distribution, p.user.Depositor), p.user); err != nil {
		return nil, errors.Wrap(err, "cannot store claim")
	}
	multidist.GetLogger(ctx).Debug("claimed",
		"distribution", p.user.Distribution, "depositor", p.user.Depositor,
		"paid", p.toPay, "received", p.user.ReceivedAmount)
	return &multidist.DeliverResult{
		Data: uint64Bytes(p.toPay),
		Tags: []common.KVPair{
			multidist.Tag("ledger.distribution", []byte(p.user.Distribution.String())),
			multidist.Tag("ledger.depositor", []byte(p.user.Depositor.String())),
		},
	}, nil
}

type payout struct {
	d     *Distribution
	user  *DistributionUserState
	toPay uint64
}

func (h *ClaimHandler) prepare(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*payout, error) {
	var msg ClaimMsg
	if err := multidist.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	d, err := h.s.distribution(db, msg.DistributionID)
	if err != nil {
		return nil, err
	}
	if err := expect(msg.ExpectedVault, d.VaultAddress, msg.AssetID, d.AssetID); err != nil {
		return nil, err
	}
	depositor, err := actor(ctx, h.auth, msg.Depositor)
	if err != nil {
		return nil, err
	}
	c, err := h.s.collection(db, d.Collection)
	if err != nil {
		return nil, err
	}
	var deposit CollectionUserState
	if err := h.s.collUsers.One(db, userKey(d.Collection, depositor), &deposit); err != nil {
		return nil, errors.Wrap(err, "no deposit")
	}

	user := &DistributionUserState{
		Metadata:     &multidist.Metadata{Schema: 1},
		Distribution: msg.DistributionID,
		Depositor:    depositor,
	}
	switch err := h.s.distUsers.One(db, userKey(msg.DistributionID, depositor), user); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return nil, errors.Wrap(err, "cannot load claim")
	}

	entitled, err := Entitlement(deposit.DepositedAmount, d.LifetimeFunded, c.MaxCollectable)
	if err != nil {
		return nil, errors.Wrap(err, "entitlement")
	}
	toPay, err := sub64(entitled, user.ReceivedAmount)
	if err != nil {
		return nil, errors.Wrap(err, "amount to pay")
	}
	user.ReceivedAmount = entitled
	if d.LifetimePaidOut, err = add64(d.LifetimePaidOut, toPay); err != nil {
		return nil, errors.Wrap(err, "lifetime paid out")
	}
	return &payout{d: d, user: user, toPay: toPay}, nil
}

// actor returns the explicitly named address if it is authenticated, or
// the main signer if none was named.
func actor(ctx multidist.Context, auth x.Authenticator, named multidist.Address) (multidist.Address, error) {
	if len(named) != 0 {
		if !auth.HasAddress(ctx, named) {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "%s signature missing", named)
		}
		return named, nil
	}
	signer := x.MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature missing")
	}
	return signer.Address(), nil
}

// expect compares optional message expectations with the stored record.
func expect(wantVault, vault multidist.Address, wantAsset, asset string) error {
	if len(wantVault) != 0 && !wantVault.Equals(vault) {
		return errors.Wrapf(errors.ErrMismatch, "vault is %s, not %s", vault, wantVault)
	}
	if wantAsset != "" && wantAsset != asset {
		return errors.Wrapf(errors.ErrMismatch, "asset is %s, not %s", asset, wantAsset)
	}
	return nil
}
