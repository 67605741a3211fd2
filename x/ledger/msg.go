package ledger

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/coin"
	"github.com/iov-one/multidist/errors"
)

const (
	pathCreateCollection   = "ledger/create_collection"
	pathLowerCap           = "ledger/lower_cap"
	pathWithdraw           = "ledger/withdraw"
	pathCreateDistribution = "ledger/create_distribution"
	pathFundDistribution   = "ledger/fund_distribution"
	pathCommit             = "ledger/commit"
	pathClaim              = "ledger/claim"
)

var (
	_ multidist.Msg = (*CreateCollectionMsg)(nil)
	_ multidist.Msg = (*LowerCapMsg)(nil)
	_ multidist.Msg = (*WithdrawMsg)(nil)
	_ multidist.Msg = (*CreateDistributionMsg)(nil)
	_ multidist.Msg = (*FundDistributionMsg)(nil)
	_ multidist.Msg = (*CommitMsg)(nil)
	_ multidist.Msg = (*ClaimMsg)(nil)
)

// CreateCollectionMsg creates a new collection. The authority defaults to
// the main signer.
type CreateCollectionMsg struct {
	Metadata       *multidist.Metadata
	Authority      multidist.Address
	AssetID        string
	Discriminator  uint64
	MaxCollectable uint64
}

func (CreateCollectionMsg) Path() string {
	return pathCreateCollection
}

func (m *CreateCollectionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Authority", optionalAddress(m.Authority))
	errs = errors.AppendField(errs, "AssetID", requiredAsset(m.AssetID))
	if m.MaxCollectable == 0 {
		errs = errors.Append(errs, errors.Field("MaxCollectable", errors.ErrConfiguration, "must be greater than zero"))
	}
	return errs
}

func (m *CreateCollectionMsg) Marshal() ([]byte, error) {
	var w codec.Writer
	writeMetadata(&w, m.Metadata)
	w.Bytes(2, m.Authority)
	w.String(3, m.AssetID)
	w.Uint64(4, m.Discriminator)
	w.Uint64(5, m.MaxCollectable)
	return w.Result()
}

func (m *CreateCollectionMsg) Unmarshal(raw []byte) error {
	*m = CreateCollectionMsg{}
	return readFields(raw, func(r *codec.Reader) (err error) {
		switch r.Field() {
		case 1:
			m.Metadata, err = readMetadata(r)
		case 2:
			m.Authority, err = r.Bytes()
		case 3:
			m.AssetID, err = r.String()
		case 4:
			m.Discriminator, err = r.Uint64()
		case 5:
			m.MaxCollectable, err = r.Uint64()
		default:
			err = r.Skip()
		}
		return err
	})
}

// LowerCapMsg decreases the cap of a collection.
type LowerCapMsg struct {
	Metadata          *multidist.Metadata
	CollectionID      multidist.Address
	NewMaxCollectable uint64
}

func (LowerCapMsg) Path() string {
	return pathLowerCap
}

func (m *LowerCapMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "CollectionID", m.CollectionID.Validate())
	return errs
}

func (m *LowerCapMsg) Marshal() ([]byte, error) {
	var w codec.Writer
	writeMetadata(&w, m.Metadata)
	w.Bytes(2, m.CollectionID)
	w.Uint64(3, m.NewMaxCollectable)
	return w.Result()
}

func (m *LowerCapMsg) Unmarshal(raw []byte) error {
	*m = LowerCapMsg{}
	return readFields(raw, func(r *codec.Reader) (err error) {
		switch r.Field() {
		case 1:
			m.Metadata, err = readMetadata(r)
		case 2:
			m.CollectionID, err = r.Bytes()
		case 3:
			m.NewMaxCollectable, err = r.Uint64()
		default:
			err = r.Skip()
		}
		return err
	})
}

// WithdrawMsg moves the whole vault balance of a collection to its
// authority.
type WithdrawMsg struct {
	Metadata      *multidist.Metadata
	CollectionID  multidist.Address
	ExpectedVault multidist.Address
	AssetID       string
}

func (WithdrawMsg) Path() string {
	return pathWithdraw
}

func (m *WithdrawMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "CollectionID", m.CollectionID.Validate())
	errs = errors.AppendField(errs, "ExpectedVault", optionalAddress(m.ExpectedVault))
	errs = errors.AppendField(errs, "AssetID", optionalAsset(m.AssetID))
	return errs
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	var w codec.Writer
	writeMetadata(&w, m.Metadata)
	w.Bytes(2, m.CollectionID)
	w.Bytes(3, m.ExpectedVault)
	w.String(4, m.AssetID)
	return w.Result()
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	*m = WithdrawMsg{}
	return readFields(raw, func(r *codec.Reader) (err error) {
		switch r.Field() {
		case 1:
			m.Metadata, err = readMetadata(r)
		case 2:
			m.CollectionID, err = r.Bytes()
		case 3:
			m.ExpectedVault, err = r.Bytes()
		case 4:
			m.AssetID, err = r.String()
		default:
			err = r.Skip()
		}
		return err
	})
}

// CreateDistributionMsg attaches a reward pool of given asset to a
// collection.
type CreateDistributionMsg struct {
	Metadata     *multidist.Metadata
	CollectionID multidist.Address
	AssetID      string
}

func (CreateDistributionMsg) Path() string {
	return pathCreateDistribution
}

func (m *CreateDistributionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "CollectionID", m.CollectionID.Validate())
	errs = errors.AppendField(errs, "AssetID", requiredAsset(m.AssetID))
	return errs
}

func (m *CreateDistributionMsg) Marshal() ([]byte, error) {
	var w codec.Writer
	writeMetadata(&w, m.Metadata)
	w.Bytes(2, m.CollectionID)
	w.String(3, m.AssetID)
	return w.Result()
}

func (m *CreateDistributionMsg) Unmarshal(raw []byte) error {
	*m = CreateDistributionMsg{}
	return readFields(raw, func(r *codec.Reader) (err error) {
		switch r.Field() {
		case 1:
			m.Metadata, err = readMetadata(r)
		case 2:
			m.CollectionID, err = r.Bytes()
		case 3:
			m.AssetID, err = r.String()
		default:
			err = r.Skip()
		}
		return err
	})
}

// FundDistributionMsg adds rewards to a distribution. The funder defaults
// to the main signer.
type FundDistributionMsg struct {
	Metadata       *multidist.Metadata
	Funder         multidist.Address
	DistributionID multidist.Address
	Amount         uint64
	ExpectedVault  multidist.Address
	AssetID        string
}

func (FundDistributionMsg) Path() string {
	return pathFundDistribution
}

func (m *FundDistributionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Funder", optionalAddress(m.Funder))
	errs = errors.AppendField(errs, "DistributionID", m.DistributionID.Validate())
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be greater than zero"))
	}
	errs = errors.AppendField(errs, "ExpectedVault", optionalAddress(m.ExpectedVault))
	errs = errors.AppendField(errs, "AssetID", optionalAsset(m.AssetID))
	return errs
}

func (m *FundDistributionMsg) Marshal() ([]byte, error) {
	var w codec.Writer
	writeMetadata(&w, m.Metadata)
	w.Bytes(2, m.Funder)
	w.Bytes(3, m.DistributionID)
	w.Uint64(4, m.Amount)
	w.Bytes(5, m.ExpectedVault)
	w.String(6, m.AssetID)
	return w.Result()
}

func (m *FundDistributionMsg) Unmarshal(raw []byte) error {
	*m = FundDistributionMsg{}
	return readFields(raw, func(r *codec.Reader) (err error) {
		switch r.Field() {
		case 1:
			m.Metadata, err = readMetadata(r)
		case 2:
			m.Funder, err = r.Bytes()
		case 3:
			m.DistributionID, err = r.Bytes()
		case 4:
			m.Amount, err = r.Uint64()
		case 5:
			m.ExpectedVault, err = r.Bytes()
		case 6:
			m.AssetID, err = r.String()
		default:
			err = r.Skip()
		}
		return err
	})
}

// CommitMsg deposits into a collection. The depositor defaults to the main
// signer. A zero amount only creates the deposit record.
type CommitMsg struct {
	Metadata      *multidist.Metadata
	Depositor     multidist.Address
	CollectionID  multidist.Address
	Amount        uint64
	ExpectedVault multidist.Address
	AssetID       string
}

func (CommitMsg) Path() string {
	return pathCommit
}

func (m *CommitMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Depositor", optionalAddress(m.Depositor))
	errs = errors.AppendField(errs, "CollectionID", m.CollectionID.Validate())
	errs = errors.AppendField(errs, "ExpectedVault", optionalAddress(m.ExpectedVault))
	errs = errors.AppendField(errs, "AssetID", optionalAsset(m.AssetID))
	return errs
}

func (m *CommitMsg) Marshal() ([]byte, error) {
	var w codec.Writer
	writeMetadata(&w, m.Metadata)
	w.Bytes(2, m.Depositor)
	w.Bytes(3, m.CollectionID)
	w.Uint64(4, m.Amount)
	w.Bytes(5, m.ExpectedVault)
	w.String(6, m.AssetID)
	return w.Result()
}

func (m *CommitMsg) Unmarshal(raw []byte) error {
	*m = CommitMsg{}
	return readFields(raw, func(r *codec.Reader) (err error) {
		switch r.Field() {
		case 1:
			m.Metadata, err = readMetadata(r)
		case 2:
			m.Depositor, err = r.Bytes()
		case 3:
			m.CollectionID, err = r.Bytes()
		case 4:
			m.Amount, err = r.Uint64()
		case 5:
			m.ExpectedVault, err = r.Bytes()
		case 6:
			m.AssetID, err = r.String()
		default:
			err = r.Skip()
		}
		return err
	})
}

// ClaimMsg pays the depositor what a distribution owes it. The depositor
// defaults to the main signer.
type ClaimMsg struct {
	Metadata       *multidist.Metadata
	Depositor      multidist.Address
	DistributionID multidist.Address
	ExpectedVault  multidist.Address
	AssetID        string
}

func (ClaimMsg) Path() string {
	return pathClaim
}

func (m *ClaimMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Depositor", optionalAddress(m.Depositor))
	errs = errors.AppendField(errs, "DistributionID", m.DistributionID.Validate())
	errs = errors.AppendField(errs, "ExpectedVault", optionalAddress(m.ExpectedVault))
	errs = errors.AppendField(errs, "AssetID", optionalAsset(m.AssetID))
	return errs
}

func (m *ClaimMsg) Marshal() ([]byte, error) {
	var w codec.Writer
	writeMetadata(&w, m.Metadata)
	w.Bytes(2, m.Depositor)
	w.Bytes(3, m.DistributionID)
	w.Bytes(4, m.ExpectedVault)
	w.String(5, m.AssetID)
	return w.Result()
}

func (m *ClaimMsg) Unmarshal(raw []byte) error {
	*m = ClaimMsg{}
	return readFields(raw, func(r *codec.Reader) (err error) {
		switch r.Field() {
		case 1:
			m.Metadata, err = readMetadata(r)
		case 2:
			m.Depositor, err = r.Bytes()
		case 3:
			m.DistributionID, err = r.Bytes()
		case 4:
			m.ExpectedVault, err = r.Bytes()
		case 5:
			m.AssetID, err = r.String()
		default:
			err = r.Skip()
		}
		return err
	})
}

func optionalAddress(a multidist.Address) error {
	if len(a) == 0 {
		return nil
	}
	return a.Validate()
}

func requiredAsset(id string) error {
	if !coin.IsCC(id) {
		return errors.Wrapf(errors.ErrCurrency, "invalid asset %q", id)
	}
	return nil
}

func optionalAsset(id string) error {
	if id == "" {
		return nil
	}
	return requiredAsset(id)
}

func writeMetadata(w *codec.Writer, m *multidist.Metadata) {
	if m != nil {
		w.Message(1, m)
	}
}

func readMetadata(r *codec.Reader) (*multidist.Metadata, error) {
	var m multidist.Metadata
	if err := r.Message(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func readFields(raw []byte, field func(*codec.Reader) error) error {
	r := codec.NewReader(raw)
	for r.Next() {
		if err := field(r); err != nil {
			return err
		}
	}
	return r.Err()
}
