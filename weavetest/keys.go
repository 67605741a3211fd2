package weavetest

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/crypto"
)

// NewKey returns a new, randomly generated signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a new, randomly generated key.
func NewCondition() multidist.Condition {
	return NewKey().PublicKey().Condition()
}
