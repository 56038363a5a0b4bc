/*
Package weave defines the interfaces shared by the escrow ledger: stores,
transactions, handlers and decorators, conditions and addresses, and the
derivation of keyless addresses.

Context is passed through context.Context between app, middleware and
handlers. For every value XYZ of type T carried by the context there are two
functions:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package weave
