/*
Package escrow implements an escrow that swaps a unique asset for a fixed
amount of a fungible currency.

A maker opens an escrow under a seed of their choice, naming the asset, the
currency and the price. The seed alone determines the escrow address, so the
record can be found again by anybody who knows the seed. Listing hands the
asset over to the escrow address. Any taker can then pay the price to the
maker and receive the asset, or the maker can cancel and get the asset back.
Both Take and Cancel close the record and return its storage bond to the
maker.

The escrow address is derived, there is no private key for it. Only this
package can act on its behalf, by reproducing the derivation from the seed
and the nonce stored in the record, see Authority.
*/
package escrow
