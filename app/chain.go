package app

import (
	"reflect"

	"github.com/iov-one/multidist"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []multidist.Decorator
}

/*
ChainDecorators takes a chain of decorators, and upon adding a final
Handler (usually the Router) returns a Handler that executes the whole
stack. The first decorator is the outermost one.

	app.ChainDecorators(
	  utils.NewLogging(),
	  utils.NewRecovery(),
	  sigs.NewDecorator(),
	  utils.NewSavepoint().OnDeliver(),
	).WithHandler(router)
*/
func ChainDecorators(chain ...multidist.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain. Nil
// decorators are skipped.
func (d Decorators) Chain(chain ...multidist.Decorator) Decorators {
	next := make([]multidist.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			next = append(next, dec)
		}
	}
	return Decorators{chain: next}
}

func isNilDecorator(d multidist.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h multidist.Handler) multidist.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step executes a decorator around a specific Handler.
type step struct {
	d    multidist.Decorator
	next multidist.Handler
}

var _ multidist.Handler = step{}

func (s step) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.CheckResult, error) {
	return s.d.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.DeliverResult, error) {
	return s.d.Deliver(ctx, db, tx, s.next)
}
