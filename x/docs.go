/*
Package x contains the helpers shared by all extensions.

The extensions themselves live in sub packages. Every extension receives an
Authenticator when its handlers are created, so that the same handler can be
used with signatures, with test doubles or with any other way of proving
who sent a transaction.
*/
package x
