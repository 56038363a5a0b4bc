package errors

import (
	"errors"
	"fmt"
)

// SuccessABCICode is the ABCI code of a successful transaction.
const SuccessABCICode = 0

// Errors that carry no ABCI code are reported with internalABCICode and,
// outside of debug mode, with internalABCILog instead of their message.
const (
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log a client receives for err. Messages of
// internal errors and panics are hidden unless debug is set, in which case
// the full error with its stack trace is returned.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case isInternal(err, code):
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// Redact replaces an internal error or a panic with a generic error that
// does not leak details. It does nothing in debug mode.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if isInternal(err, abciCode(err)) {
		return errors.New(internalABCILog)
	}
	return err
}

func isInternal(err error, code uint32) bool {
	return code == internalABCICode || ErrPanic.Is(err)
}

// abciCode unwraps err until it finds an ABCI code.
func abciCode(err error) uint32 {
	for !errIsNil(err) {
		if c, ok := err.(interface{ ABCICode() uint32 }); ok {
			return c.ABCICode()
		}
		cause, ok := err.(causer)
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return internalABCICode
}
