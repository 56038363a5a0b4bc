/*
Package x holds the Authenticator contract shared by the extensions in its
sub-packages and a few helpers around it.

The extensions (sigs, utils, cash, nft, escrow) each provide handlers,
decorators or controllers that the application composes into a single
stack. An extension reads the signers of a transaction only through an
Authenticator, so that new sources of authority such as derived escrow
addresses can be chained in without touching the other extensions.
*/
package x
