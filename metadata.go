package multidist

import (
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/errors"
)

// Metadata is carried by every persisted model. Schema is the version of
// the model encoding and must be positive.
type Metadata struct {
	Schema uint32 `json:"schema"`
}

// Validate returns an error if the schema version is not set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be greater than zero")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when
// implementing orm.CloneableData interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

func (m *Metadata) Marshal() ([]byte, error) {
	var w codec.Writer
	w.Uint64(1, uint64(m.Schema))
	return w.Result()
}

func (m *Metadata) Unmarshal(raw []byte) error {
	*m = Metadata{}
	r := codec.NewReader(raw)
	for r.Next() {
		var err error
		switch r.Field() {
		case 1:
			var v uint64
			v, err = r.Uint64()
			m.Schema = uint32(v)
		default:
			err = r.Skip()
		}
		if err != nil {
			return err
		}
	}
	return r.Err()
}
