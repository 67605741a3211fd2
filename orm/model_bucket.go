package orm

import (
	"reflect"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
)

// ModelBucket is a typed bucket that works on models instead of objects.
// All returned errors are ErrNotFound when a model is missing, so callers
// can tell a miss apart from a broken store.
type ModelBucket interface {
	// One loads the model stored under key into dest. dest must be a
	// pointer to the bucket's model type.
	One(db multidist.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if a model exists under key, ErrNotFound otherwise.
	Has(db multidist.ReadOnlyKVStore, key []byte) error

	// ByIndex loads all models referenced by the named index value.
	// destination must be a pointer to a slice of the model type.
	ByIndex(db multidist.ReadOnlyKVStore, indexName string, key []byte, destination interface{}) ([][]byte, error)

	// Put validates and saves the model under key.
	Put(db multidist.KVStore, key []byte, m Model) error

	// Delete removes the model stored under key.
	Delete(db multidist.KVStore, key []byte) error

	// Register registers the bucket queries with the router.
	Register(name string, r multidist.QueryRouter)
}

// ModelBucketOption configures a model bucket.
type ModelBucketOption func(*modelBucket)

// WithIndex adds a secondary index to the model bucket.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, indexer, unique)
	}
}

// NewModelBucket returns a ModelBucket storing models of the same type as
// the given prototype.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	mb := &modelBucket{
		b:     NewBucket(name, NewSimpleObj(nil, m)),
		model: reflect.TypeOf(m),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

func (mb *modelBucket) Register(name string, r multidist.QueryRouter) {
	mb.b.Register(name, r)
}

func (mb *modelBucket) One(db multidist.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.b.Name(), key)
	}
	return loadInto(dest, obj.Value())
}

func (mb *modelBucket) Has(db multidist.ReadOnlyKVStore, key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrNotFound, "nil key")
	}
	ok, err := db.Has(mb.b.DBKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.b.Name(), key)
	}
	return nil
}

func (mb *modelBucket) ByIndex(db multidist.ReadOnlyKVStore, indexName string, key []byte, destination interface{}) ([][]byte, error) {
	objs, err := mb.b.GetIndexed(db, indexName, key)
	if err != nil {
		return nil, err
	}
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "destination must be a pointer to a slice, got %T", destination)
	}
	slice := dest.Elem()
	elemType := slice.Type().Elem()
	keys := make([][]byte, 0, len(objs))
	for _, obj := range objs {
		v := reflect.ValueOf(obj.Value())
		switch {
		case v.Type().AssignableTo(elemType):
			slice = reflect.Append(slice, v)
		case v.Elem().Type().AssignableTo(elemType):
			slice = reflect.Append(slice, v.Elem())
		default:
			return nil, errors.Wrapf(errors.ErrType, "cannot load %T into %s", obj.Value(), elemType)
		}
		keys = append(keys, obj.Key())
	}
	dest.Elem().Set(slice)
	return keys, nil
}

func (mb *modelBucket) Put(db multidist.KVStore, key []byte, m Model) error {
	if t := reflect.TypeOf(m); t != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %s in %s bucket", t, mb.b.Name())
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	return mb.b.Save(db, NewSimpleObj(key, m))
}

func (mb *modelBucket) Delete(db multidist.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

// loadInto copies the value of src into dest. Both must be pointers to
// the same type.
func loadInto(dest, src Model) error {
	d := reflect.ValueOf(dest)
	s := reflect.ValueOf(src)
	if d.Kind() != reflect.Ptr || d.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination must be a non nil pointer, got %T", dest)
	}
	if d.Type() != s.Type() {
		return errors.Wrapf(errors.ErrType, "cannot load %T into %T", src, dest)
	}
	d.Elem().Set(s.Elem())
	return nil
}
