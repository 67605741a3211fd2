/*
Package errors implements the error handling of the ledger.

Every error returned by a handler should wrap one of the root errors
declared in this package, or a root error declared by an extension with
Register. The ABCI code of the root error is what the client receives.

	errors.Wrap(errors.ErrCapacity, "commit")
	errors.ErrNotFound.Newf("collection %s", key)

Is unwraps an error to test its kind. Field and Append build validation
errors that keep every failing attribute.

Stack traces are attached at the most inner Wrap call. Use %+v to print
the full stack trace and %v for the error message with the creation point.
*/
package errors
