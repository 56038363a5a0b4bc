/*
Package cash defines a simple implementation of fungible currencies held in
per owner accounts.

A currency must be registered before any account of it can exist. Each
(currency, owner) pair has exactly one account, stored under a derived
account address. There is no logic in the currencies, except that the balance
of any account may not go below zero and may not overflow. Thus, this
implementation is referred to as cash. Simple and safe.

Moving funds out of an account requires the owner to be authenticated. The
owner can be a signature condition or any other condition an Authenticator
reveals, such as the keyless authority of an escrow.
*/
package cash
