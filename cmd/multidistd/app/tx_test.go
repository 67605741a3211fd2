package app

import (
	"testing"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/crypto"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/weavetest/assert"
	"github.com/iov-one/multidist/x/ledger"
	"github.com/iov-one/multidist/x/sigs"
)

func TestTxEncoding(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	msg := &ledger.CommitMsg{
		Metadata:     &multidist.Metadata{Schema: 1},
		CollectionID: key.PublicKey().Address(),
		Amount:       42,
	}
	tx := NewTx(msg)
	sig, err := sigs.SignTx(key, tx, "test-chain", 7)
	assert.Nil(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	raw, err := tx.Marshal()
	assert.Nil(t, err)
	decoded, err := TxDecoder(raw)
	assert.Nil(t, err)

	got, err := decoded.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, msg, got)
	assert.Equal(t, tx.Signatures, decoded.(*Tx).GetSignatures())

	// Sign bytes do not depend on the signatures.
	signed, err := tx.GetSignBytes()
	assert.Nil(t, err)
	unsigned, err := NewTx(msg).GetSignBytes()
	assert.Nil(t, err)
	assert.Equal(t, unsigned, signed)
}

func TestTxAllMessagesRegistered(t *testing.T) {
	seen := make(map[int]bool)
	for _, f := range msgFields {
		if seen[f.field] {
			t.Fatalf("field %d used twice", f.field)
		}
		seen[f.field] = true
		if f.field == fieldSignatures {
			t.Fatalf("%s uses the signatures field", f.path)
		}
		msg := f.build()
		assert.Equal(t, f.path, msg.Path())
	}
}

func TestTxInvalid(t *testing.T) {
	_, err := new(Tx).GetMsg()
	assert.IsErr(t, errors.ErrMsg, err)

	var w codec.Writer
	w.Message(60, &ledger.CreateCollectionMsg{AssetID: "ETH"})
	w.Message(65, &ledger.CommitMsg{Amount: 1})
	raw, err := w.Result()
	assert.Nil(t, err)
	_, err = TxDecoder(raw)
	assert.IsErr(t, errors.ErrMsg, err)

	// Unknown fields are skipped.
	w = codec.Writer{}
	w.Uint64(99, 5)
	w.Message(65, &ledger.CommitMsg{Amount: 3})
	raw, err = w.Result()
	assert.Nil(t, err)
	decoded, err := TxDecoder(raw)
	assert.Nil(t, err)
	got, err := decoded.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), got.(*ledger.CommitMsg).Amount)
}
