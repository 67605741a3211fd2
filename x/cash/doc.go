/*
Package cash keeps the balances of all accounts.

A wallet holds a normalized set of coins. Coins move between wallets with
the Controller, which is used by the send handler and by every extension
that has to transfer value on behalf of an account it controls, like the
ledger vaults. New coins can only be minted by the owner of the ticker, as
recorded by the currency registry.
*/
package cash
