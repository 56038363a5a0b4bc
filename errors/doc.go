/*
Package errors implements custom error interfaces for the escrow chain.

The idea is to reuse as many errors from this package as possible and define
custom package errors when absolutely necessary. x/escrow, x/cash and x/nft
each register a few of their own.

If you want to register a custom error - use Register(code, description).
For reusing errors - use Errxxx.New and Errxxx.Newf.
Code stands for ABCI error code, which allows to distinguish types of errors
on the client side and act accordingly.

Create the error using ErrXyz.New("...") or errors.Wrap(err, "...") at the
point of failure to attach a stacktrace. Only the first wrap records one.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
	%s is just the error message
	%+v is the message followed by the stack trace
*/
package errors
