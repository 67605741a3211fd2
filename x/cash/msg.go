package cash

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/coin"
	"github.com/iov-one/multidist/errors"
)

// Ensure we implement the Msg interface
var _ multidist.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
	maxRefSize  int = 64
)

// SendMsg moves coins from the source account to the destination.
type SendMsg struct {
	Metadata    *multidist.Metadata
	Source      multidist.Address
	Destination multidist.Address
	Amount      *coin.Coin
	Memo        string
	Ref         []byte
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	if coin.IsEmpty(s.Amount) {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "non-positive amount"))
	} else {
		errs = errors.AppendField(errs, "Amount", s.Amount.Validate())
	}
	errs = errors.AppendField(errs, "Source", s.Source.Validate())
	errs = errors.AppendField(errs, "Destination", s.Destination.Validate())
	if len(s.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "memo too long"))
	}
	if len(s.Ref) > maxRefSize {
		errs = errors.Append(errs, errors.Field("Ref", errors.ErrInput, "ref too long"))
	}
	return errs
}

func (s *SendMsg) Marshal() ([]byte, error) {
	var w codec.Writer
	if s.Metadata != nil {
		w.Message(1, s.Metadata)
	}
	w.Bytes(2, s.Source)
	w.Bytes(3, s.Destination)
	if s.Amount != nil {
		w.Message(4, s.Amount)
	}
	w.String(5, s.Memo)
	w.Bytes(6, s.Ref)
	return w.Result()
}

func (s *SendMsg) Unmarshal(raw []byte) error {
	*s = SendMsg{}
	r := codec.NewReader(raw)
	for r.Next() {
		var err error
		switch r.Field() {
		case 1:
			s.Metadata = &multidist.Metadata{}
			err = r.Message(s.Metadata)
		case 2:
			s.Source, err = r.Bytes()
		case 3:
			s.Destination, err = r.Bytes()
		case 4:
			s.Amount = &coin.Coin{}
			err = r.Message(s.Amount)
		case 5:
			s.Memo, err = r.String()
		case 6:
			s.Ref, err = r.Bytes()
		default:
			err = r.Skip()
		}
		if err != nil {
			return err
		}
	}
	return r.Err()
}
