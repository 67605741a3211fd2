package sigs

import (
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/crypto"
	"github.com/iov-one/multidist/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the Decorator.
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the Msg.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is a signature of a transaction together with the signer
// public key and the sequence used when signing.
type StdSignature struct {
	Sequence  int64
	Pubkey    *crypto.PublicKey
	Signature *crypto.Signature
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil || len(s.Pubkey.Ed25519) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil || len(s.Signature.Ed25519) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) {
	var w codec.Writer
	w.Int64(1, s.Sequence)
	if s.Pubkey != nil {
		w.Message(2, s.Pubkey)
	}
	if s.Signature != nil {
		w.Message(3, s.Signature)
	}
	return w.Result()
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	*s = StdSignature{}
	r := codec.NewReader(raw)
	for r.Next() {
		var err error
		switch r.Field() {
		case 1:
			s.Sequence, err = r.Int64()
		case 2:
			s.Pubkey = &crypto.PublicKey{}
			err = r.Message(s.Pubkey)
		case 3:
			s.Signature = &crypto.Signature{}
			err = r.Message(s.Signature)
		default:
			err = r.Skip()
		}
		if err != nil {
			return err
		}
	}
	return r.Err()
}
