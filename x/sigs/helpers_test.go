package sigs

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/weavetest"
)

// signedTx is a minimal transaction carrying signatures.
type signedTx struct {
	weavetest.Tx
	data []byte
	sigs []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)
var _ multidist.Tx = (*signedTx)(nil)

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.data, nil
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.sigs
}

func newSignedTx(data []byte) *signedTx {
	return &signedTx{
		Tx:   weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/data", Serialized: data}},
		data: data,
	}
}
