package app

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/x/cash"
	"github.com/iov-one/multidist/x/currency"
	"github.com/iov-one/multidist/x/ledger"
	"github.com/iov-one/multidist/x/sigs"
)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (multidist.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ multidist.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

const fieldSignatures = 1

// msgField binds a message type to the field number it is encoded under.
// Only one message field is ever set on a transaction.
type msgField struct {
	field int
	path  string
	build func() multidist.Msg
}

var msgFields = []msgField{
	{51, cash.SendMsg{}.Path(), func() multidist.Msg { return new(cash.SendMsg) }},
	{52, (&currency.CreateMsg{}).Path(), func() multidist.Msg { return new(currency.CreateMsg) }},
	{60, ledger.CreateCollectionMsg{}.Path(), func() multidist.Msg { return new(ledger.CreateCollectionMsg) }},
	{61, ledger.LowerCapMsg{}.Path(), func() multidist.Msg { return new(ledger.LowerCapMsg) }},
	{62, ledger.WithdrawMsg{}.Path(), func() multidist.Msg { return new(ledger.WithdrawMsg) }},
	{63, ledger.CreateDistributionMsg{}.Path(), func() multidist.Msg { return new(ledger.CreateDistributionMsg) }},
	{64, ledger.FundDistributionMsg{}.Path(), func() multidist.Msg { return new(ledger.FundDistributionMsg) }},
	{65, ledger.CommitMsg{}.Path(), func() multidist.Msg { return new(ledger.CommitMsg) }},
	{66, ledger.ClaimMsg{}.Path(), func() multidist.Msg { return new(ledger.ClaimMsg) }},
}

func fieldByPath(path string) (msgField, bool) {
	for _, f := range msgFields {
		if f.path == path {
			return f, true
		}
	}
	return msgField{}, false
}

func fieldByNumber(n int) (msgField, bool) {
	for _, f := range msgFields {
		if f.field == n {
			return f, true
		}
	}
	return msgField{}, false
}

// Tx is the transaction format accepted by the application. It carries a
// single message and the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature
	Msg        multidist.Msg
}

// NewTx wraps the message into a new unsigned transaction.
func NewTx(msg multidist.Msg) *Tx {
	return &Tx{Msg: msg}
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (multidist.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "transaction without message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures on the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are never part of
// the signed content.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	var w codec.Writer
	for _, s := range tx.Signatures {
		if s == nil {
			return nil, errors.Wrap(errors.ErrInput, "nil signature")
		}
		w.Message(fieldSignatures, s)
	}
	if tx.Msg != nil {
		f, ok := fieldByPath(tx.Msg.Path())
		if !ok {
			return nil, errors.Wrapf(errors.ErrMsg, "unsupported message %q", tx.Msg.Path())
		}
		w.Message(f.field, tx.Msg)
	}
	return w.Result()
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	r := codec.NewReader(raw)
	for r.Next() {
		if r.Field() == fieldSignatures {
			s := new(sigs.StdSignature)
			if err := r.Message(s); err != nil {
				return err
			}
			tx.Signatures = append(tx.Signatures, s)
			continue
		}
		f, ok := fieldByNumber(r.Field())
		if !ok {
			if err := r.Skip(); err != nil {
				return err
			}
			continue
		}
		if tx.Msg != nil {
			return errors.Wrap(errors.ErrMsg, "more than one message")
		}
		msg := f.build()
		if err := r.Message(msg); err != nil {
			return err
		}
		tx.Msg = msg
	}
	return r.Err()
}
