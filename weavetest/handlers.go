package weavetest

import "github.com/iov-one/multidist"

// Handler is a mock implementation of the multidist.Handler interface.
//
// Every call is counted. If Write is set, each Deliver call stores it in
// the database before returning, which allows testing rollback behaviour
// of decorators.
type Handler struct {
	checkCall   int
	CheckResult multidist.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult multidist.DeliverResult
	DeliverErr    error

	// Write is stored on every Deliver call.
	Write *multidist.Model
	// Panic if set makes every call panic with this value.
	Panic interface{}
}

var _ multidist.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.CheckResult, error) {
	h.checkCall++
	if h.Panic != nil {
		panic(h.Panic)
	}
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.DeliverResult, error) {
	h.deliverCall++
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.Write != nil {
		if err := db.Set(h.Write.Key, h.Write.Value); err != nil {
			return nil, err
		}
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorate returns a handler that calls given decorator before the handler.
func Decorate(h multidist.Handler, d multidist.Decorator) multidist.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn multidist.Handler
	dc multidist.Decorator
}

func (d *decoratedHandler) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx) (*multidist.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
