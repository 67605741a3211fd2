/*
Package multidist defines the common interfaces that tie the ledger
extensions together, as well as implementations of some of the simpler
components (when interfaces would be too much overhead).

Context is passed through context.Context between app, middleware, and
handlers. The package defines common keys to store info, such as block
height and chain id. Each extension, such as sigs, may add its own keys to
enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set to avoid lower-level modules
overwriting the value (eg. height, chain id).
*/
package multidist
