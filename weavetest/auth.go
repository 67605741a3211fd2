package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/multidist"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions. Signer and
// Signers are both considered, Signer is a convenience for the single
// signer case.
type Auth struct {
	Signer  multidist.Condition
	Signers []multidist.Condition
}

func (a *Auth) GetConditions(multidist.Context) []multidist.Condition {
	if a.Signer != nil {
		return append([]multidist.Condition{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx multidist.Context, addr multidist.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

// SetConditions returns a context that authenticates given conditions.
func (a *CtxAuth) SetConditions(ctx multidist.Context, permissions ...multidist.Condition) multidist.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx multidist.Context) []multidist.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]multidist.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []multidist.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx multidist.Context, addr multidist.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
