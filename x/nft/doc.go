/*
Package nft is a registry of unique assets.

Every asset has an immutable ID, a single owner and some descriptive
metadata. The only state transition is a transfer of ownership, which must be
authorized by the current owner. The owner is an address, so it can be a
signature condition or the keyless authority of another extension that holds
the asset in custody.
*/
package nft
