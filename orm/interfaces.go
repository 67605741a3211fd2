/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets.
  - Each bucket contains only one type of object.
  - It has a primary key, which may be composite.
  - It may possess one or more secondary indexes.
  - Easy queries for one and iteration.

ModelBucket is the typed entry point for extensions: One loads a model by
its key, Put validates and saves it, ByIndex resolves a secondary index.
*/
package orm

import (
	"github.com/iov-one/multidist"
)

// Model is implemented by any entity that can be stored in a bucket.
type Model interface {
	multidist.Persistent
	// Validate returns error if the object is not in a valid state to save
	// to the db (eg. field missing, out of range, ...).
	Validate() error
}

// Object is what is stored in the bucket.
// Key is joined with the prefix to set the full key.
// Value is the data stored.
type Object interface {
	Keyed
	Cloneable
	Validate() error
	Value() Model
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into.
type Cloneable interface {
	Clone() Object
}

// Indexer calculates the secondary index key for a value.
// Returning nil means the object is not indexed.
type Indexer func(Object) ([]byte, error)
