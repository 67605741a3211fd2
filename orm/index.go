package orm

import (
	"bytes"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
)

// Index is a secondary index that maps a value calculated from an object
// to the primary keys of all objects with that value.
//
// Every reference is stored as a separate entry
//
//	_i.<bucket>_<name>:<len(value)><value><primary key> -> <primary key>
//
// so that references can be listed with a prefix scan.
type Index struct {
	name    string
	bucket  Bucket
	prefix  []byte
	indexer Indexer
	unique  bool
}

var _ multidist.QueryHandler = Index{}

// NewIndex creates an index for the given bucket. A unique index refuses
// two objects with the same index value.
func NewIndex(b Bucket, name string, indexer Indexer, unique bool) Index {
	return Index{
		name:    name,
		bucket:  b,
		prefix:  []byte("_i." + b.name + "_" + name + ":"),
		indexer: indexer,
		unique:  unique,
	}
}

func (i Index) valuePrefix(value []byte) []byte {
	out := make([]byte, 0, len(i.prefix)+1+len(value))
	out = append(out, i.prefix...)
	out = append(out, byte(len(value)))
	return append(out, value...)
}

func (i Index) refKey(value, pk []byte) []byte {
	return append(i.valuePrefix(value), pk...)
}

// Update removes the reference of the previous version of an object and
// stores the reference of the new one. Either prev or save may be nil.
func (i Index) Update(db multidist.KVStore, pk []byte, prev, save Object) error {
	var prevValue, saveValue []byte
	var err error
	if prev != nil {
		if prevValue, err = i.indexer(prev); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if save != nil {
		if saveValue, err = i.indexer(save); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if len(saveValue) > 255 {
		return errors.Wrapf(errors.ErrInput, "index %s: value too long", i.name)
	}
	if prev != nil && save != nil && bytes.Equal(prevValue, saveValue) {
		return nil
	}

	if prevValue != nil {
		if err := db.Delete(i.refKey(prevValue, pk)); err != nil {
			return err
		}
	}
	if saveValue == nil {
		return nil
	}
	if i.unique {
		refs, err := i.Keys(db, saveValue)
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
	}
	return db.Set(i.refKey(saveValue, pk), pk)
}

// Keys returns the primary keys of all objects with given index value.
func (i Index) Keys(db multidist.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	models, err := queryPrefix(db, i.valuePrefix(value))
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, len(models))
	for n, m := range models {
		keys[n] = m.Value
	}
	return keys, nil
}

// Query returns all objects referenced by the index value given as data.
// Returned models carry the full database key of every object.
func (i Index) Query(db multidist.ReadOnlyKVStore, mod string, data []byte) ([]multidist.Model, error) {
	if mod != multidist.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
	keys, err := i.Keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]multidist.Model, 0, len(keys))
	for _, pk := range keys {
		dbkey := i.bucket.DBKey(pk)
		value, err := db.Get(dbkey)
		if err != nil {
			return nil, err
		}
		if value != nil {
			res = append(res, multidist.Pair(dbkey, value))
		}
	}
	return res, nil
}
