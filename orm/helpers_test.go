package orm

import (
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/errors"
)

// counter is a minimal model used by the tests.
type counter struct {
	Owner []byte
	Count int64
}

var _ Model = (*counter)(nil)

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative count")
	}
	return nil
}

func (c *counter) Marshal() ([]byte, error) {
	var w codec.Writer
	w.Bytes(1, c.Owner)
	w.Int64(2, c.Count)
	return w.Result()
}

func (c *counter) Unmarshal(raw []byte) error {
	*c = counter{}
	r := codec.NewReader(raw)
	for r.Next() {
		var err error
		switch r.Field() {
		case 1:
			c.Owner, err = r.Bytes()
		case 2:
			c.Count, err = r.Int64()
		default:
			err = r.Skip()
		}
		if err != nil {
			return err
		}
	}
	return r.Err()
}

func byOwner(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*counter)
	if !ok {
		return nil, errors.WithType(errors.ErrType, obj.Value())
	}
	if len(c.Owner) == 0 {
		return nil, nil
	}
	return c.Owner, nil
}
