package ledger

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/coin"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/orm"
)

// Collection pools deposits of a single asset up to a cap.
type Collection struct {
	Metadata          *multidist.Metadata `json:"-"`
	Authority         multidist.Address   `json:"authority"`
	AssetID           string              `json:"asset_id"`
	VaultAddress      multidist.Address   `json:"vault_address"`
	ReceiptAssetID    string              `json:"receipt_asset_id"`
	LifetimeCollected uint64              `json:"lifetime_collected"`
	MaxCollectable    uint64              `json:"max_collectable"`
	Discriminator     uint64              `json:"discriminator"`
}

var _ orm.Model = (*Collection)(nil)

func (c *Collection) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Authority", c.Authority.Validate())
	if !coin.IsCC(c.AssetID) {
		errs = errors.Append(errs, errors.Field("AssetID", errors.ErrCurrency, "invalid asset %q", c.AssetID))
	}
	errs = errors.AppendField(errs, "VaultAddress", c.VaultAddress.Validate())
	if !coin.IsCC(c.ReceiptAssetID) {
		errs = errors.Append(errs, errors.Field("ReceiptAssetID", errors.ErrCurrency, "invalid asset %q", c.ReceiptAssetID))
	}
	if c.MaxCollectable == 0 {
		errs = errors.Append(errs, errors.Field("MaxCollectable", errors.ErrConfiguration, "must be greater than zero"))
	}
	if c.LifetimeCollected > c.MaxCollectable {
		errs = errors.Append(errs, errors.Field("LifetimeCollected", errors.ErrCapacity, "%d above cap %d", c.LifetimeCollected, c.MaxCollectable))
	}
	return errs
}

func (c *Collection) Marshal() ([]byte, error) {
	var w codec.Writer
	if c.Metadata != nil {
		w.Message(1, c.Metadata)
	}
	w.Bytes(2, c.Authority)
	w.String(3, c.AssetID)
	w.Bytes(4, c.VaultAddress)
	w.String(5, c.ReceiptAssetID)
	w.Uint64(6, c.LifetimeCollected)
	w.Uint64(7, c.MaxCollectable)
	w.Uint64(8, c.Discriminator)
	return w.Result()
}

func (c *Collection) Unmarshal(raw []byte) error {
	*c = Collection{}
	r := codec.NewReader(raw)
	for r.Next() {
		var err error
		switch r.Field() {
		case 1:
			c.Metadata = &multidist.Metadata{}
			err = r.Message(c.Metadata)
		case 2:
			c.Authority, err = r.Bytes()
		case 3:
			c.AssetID, err = r.String()
		case 4:
			c.VaultAddress, err = r.Bytes()
		case 5:
			c.ReceiptAssetID, err = r.String()
		case 6:
			c.LifetimeCollected, err = r.Uint64()
		case 7:
			c.MaxCollectable, err = r.Uint64()
		case 8:
			c.Discriminator, err = r.Uint64()
		default:
			err = r.Skip()
		}
		if err != nil {
			return err
		}
	}
	return r.Err()
}

// CollectionUserState is the deposit record of a single depositor.
type CollectionUserState struct {
	Metadata        *multidist.Metadata `json:"-"`
	Collection      multidist.Address   `json:"collection"`
	Depositor       multidist.Address   `json:"depositor"`
	DepositedAmount uint64              `json:"deposited_amount"`
}

var _ orm.Model = (*CollectionUserState)(nil)

func (u *CollectionUserState) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	errs = errors.AppendField(errs, "Collection", u.Collection.Validate())
	errs = errors.AppendField(errs, "Depositor", u.Depositor.Validate())
	return errs
}

func (u *CollectionUserState) Marshal() ([]byte, error) {
	return marshalUser(u.Metadata, u.Collection, u.Depositor, u.DepositedAmount)
}

func (u *CollectionUserState) Unmarshal(raw []byte) error {
	*u = CollectionUserState{}
	return unmarshalUser(raw, &u.Metadata, &u.Collection, &u.Depositor, &u.DepositedAmount)
}

// Distribution is a reward pool attached to a collection.
type Distribution struct {
	Metadata        *multidist.Metadata `json:"-"`
	Collection      multidist.Address   `json:"collection"`
	AssetID         string              `json:"asset_id"`
	VaultAddress    multidist.Address   `json:"vault_address"`
	LifetimeFunded  uint64              `json:"lifetime_funded"`
	LifetimePaidOut uint64              `json:"lifetime_paid_out"`
}

var _ orm.Model = (*Distribution)(nil)

func (d *Distribution) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", d.Metadata.Validate())
	errs = errors.AppendField(errs, "Collection", d.Collection.Validate())
	if !coin.IsCC(d.AssetID) {
		errs = errors.Append(errs, errors.Field("AssetID", errors.ErrCurrency, "invalid asset %q", d.AssetID))
	}
	errs = errors.AppendField(errs, "VaultAddress", d.VaultAddress.Validate())
	if d.LifetimePaidOut > d.LifetimeFunded {
		errs = errors.Append(errs, errors.Field("LifetimePaidOut", errors.ErrState, "%d above funded %d", d.LifetimePaidOut, d.LifetimeFunded))
	}
	return errs
}

func (d *Distribution) Marshal() ([]byte, error) {
	var w codec.Writer
	if d.Metadata != nil {
		w.Message(1, d.Metadata)
	}
	w.Bytes(2, d.Collection)
	w.String(3, d.AssetID)
	w.Bytes(4, d.VaultAddress)
	w.Uint64(5, d.LifetimeFunded)
	w.Uint64(6, d.LifetimePaidOut)
	return w.Result()
}

func (d *Distribution) Unmarshal(raw []byte) error {
	*d = Distribution{}
	r := codec.NewReader(raw)
	for r.Next() {
		var err error
		switch r.Field() {
		case 1:
			d.Metadata = &multidist.Metadata{}
			err = r.Message(d.Metadata)
		case 2:
			d.Collection, err = r.Bytes()
		case 3:
			d.AssetID, err = r.String()
		case 4:
			d.VaultAddress, err = r.Bytes()
		case 5:
			d.LifetimeFunded, err = r.Uint64()
		case 6:
			d.LifetimePaidOut, err = r.Uint64()
		default:
			err = r.Skip()
		}
		if err != nil {
			return err
		}
	}
	return r.Err()
}

// DistributionUserState is the claim record of a single depositor.
type DistributionUserState struct {
	Metadata       *multidist.Metadata `json:"-"`
	Distribution   multidist.Address   `json:"distribution"`
	Depositor      multidist.Address   `json:"depositor"`
	ReceivedAmount uint64              `json:"received_amount"`
}

var _ orm.Model = (*DistributionUserState)(nil)

func (u *DistributionUserState) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	errs = errors.AppendField(errs, "Distribution", u.Distribution.Validate())
	errs = errors.AppendField(errs, "Depositor", u.Depositor.Validate())
	return errs
}

func (u *DistributionUserState) Marshal() ([]byte, error) {
	return marshalUser(u.Metadata, u.Distribution, u.Depositor, u.ReceivedAmount)
}

func (u *DistributionUserState) Unmarshal(raw []byte) error {
	*u = DistributionUserState{}
	return unmarshalUser(raw, &u.Metadata, &u.Distribution, &u.Depositor, &u.ReceivedAmount)
}

// Both user states share the same layout.
func marshalUser(meta *multidist.Metadata, owner, depositor multidist.Address, amount uint64) ([]byte, error) {
	var w codec.Writer
	if meta != nil {
		w.Message(1, meta)
	}
	w.Bytes(2, owner)
	w.Bytes(3, depositor)
	w.Uint64(4, amount)
	return w.Result()
}

func unmarshalUser(raw []byte, meta **multidist.Metadata, owner, depositor *multidist.Address, amount *uint64) error {
	r := codec.NewReader(raw)
	for r.Next() {
		var err error
		switch r.Field() {
		case 1:
			*meta = &multidist.Metadata{}
			err = r.Message(*meta)
		case 2:
			*owner, err = r.Bytes()
		case 3:
			*depositor, err = r.Bytes()
		case 4:
			*amount, err = r.Uint64()
		default:
			err = r.Skip()
		}
		if err != nil {
			return err
		}
	}
	return r.Err()
}

// NewCollectionBucket returns a bucket storing collections by their key.
func NewCollectionBucket() orm.ModelBucket {
	return orm.NewModelBucket("collection", &Collection{})
}

// NewCollectionUserBucket returns a bucket storing deposit records under
// the collection key followed by the depositor address.
func NewCollectionUserBucket() orm.ModelBucket {
	return orm.NewModelBucket("colluser", &CollectionUserState{})
}

// NewDistributionBucket returns a bucket storing distributions by their
// key, indexed by the owning collection.
func NewDistributionBucket() orm.ModelBucket {
	return orm.NewModelBucket("distribution", &Distribution{},
		orm.WithIndex("collection", distributionCollection, false))
}

func distributionCollection(obj orm.Object) ([]byte, error) {
	d, ok := obj.Value().(*Distribution)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return d.Collection, nil
}

// NewDistributionUserBucket returns a bucket storing claim records under
// the distribution key followed by the depositor address.
func NewDistributionUserBucket() orm.ModelBucket {
	return orm.NewModelBucket("distuser", &DistributionUserState{})
}
