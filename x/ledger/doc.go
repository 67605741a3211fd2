/*
Package ledger implements capped collections and the reward distributions
attached to them.

A collection pools deposits of one asset in a vault, up to a cap. Every
deposit mints the same amount of the collection receipt asset to the
depositor. A distribution holds a reward asset funded by anyone and pays
every depositor a share proportional to its deposit relative to the
collection cap:

	entitlement = deposited * lifetime_funded / max_collectable

Claims pay the difference between the entitlement and what was already
received, so they can be repeated at any time.

Vaults are condition addresses derived from the record keys. No key exists
for them and only the handlers of this package move funds out of them.
*/
package ledger
