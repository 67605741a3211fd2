package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router dispatches a transaction to the handler registered for the path
// of its message. It is itself a Handler, so it sits at the bottom of the
// decorator chain.
type Router struct {
	routes map[string]multidist.Handler
}

var _ multidist.Registry = (*Router)(nil)
var _ multidist.Handler = (*Router)(nil)

// NewRouter returns a new empty router.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]multidist.Handler, 16),
	}
}

// Handle adds a new Handler for the given path. This function panics if
// the path is not valid or a handler is already registered for it.
func (r *Router) Handle(path string, h multidist.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the Handler registered for the path, or one that always
// fails with ErrNotFound.
func (r *Router) handler(path string) multidist.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg.Path()).Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg.Path()).Deliver(ctx, db, tx)
}

type notFoundHandler string

func (path notFoundHandler) Check(multidist.Context, multidist.KVStore, multidist.Tx) (*multidist.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(path))
}

func (path notFoundHandler) Deliver(multidist.Context, multidist.KVStore, multidist.Tx) (*multidist.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(path))
}
