package sigs

import (
	"math"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/crypto"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// UserData is the state kept for every public key that signed a
// transaction. The sequence is incremented with every signature to prevent
// replays.
type UserData struct {
	Metadata *multidist.Metadata
	Pubkey   *crypto.PublicKey
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	if seq := u.Sequence; seq < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	} else if seq > 0 && u.Pubkey == nil {
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "needs Pubkey"))
	}
	return errs
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	if u.Sequence == math.MaxInt64 {
		return errors.Wrap(ErrInvalidSequence, "sequence exhausted")
	}
	u.Sequence++
	return nil
}

func (u *UserData) Marshal() ([]byte, error) {
	var w codec.Writer
	if u.Metadata != nil {
		w.Message(1, u.Metadata)
	}
	if u.Pubkey != nil {
		w.Message(2, u.Pubkey)
	}
	w.Int64(3, u.Sequence)
	return w.Result()
}

func (u *UserData) Unmarshal(raw []byte) error {
	*u = UserData{}
	r := codec.NewReader(raw)
	for r.Next() {
		var err error
		switch r.Field() {
		case 1:
			u.Metadata = &multidist.Metadata{}
			err = r.Message(u.Metadata)
		case 2:
			u.Pubkey = &crypto.PublicKey{}
			err = r.Message(u.Pubkey)
		case 3:
			u.Sequence, err = r.Int64()
		default:
			err = r.Skip()
		}
		if err != nil {
			return err
		}
	}
	return r.Err()
}

// NewBucket returns a bucket storing UserData by the signer address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// loadOrCreate returns the user data of given public key. A user that never
// signed anything starts with sequence zero.
func loadOrCreate(db multidist.ReadOnlyKVStore, b orm.ModelBucket, pub *crypto.PublicKey) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pub.Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{
			Metadata: &multidist.Metadata{Schema: 1},
			Pubkey:   pub,
		}, nil
	default:
		return nil, err
	}
}
