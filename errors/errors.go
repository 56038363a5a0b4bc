package errors

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// registry maps every registered ABCI code to its root error. Code 1 is
// reserved for errors without a code.
var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a root error with a unique ABCI code. It panics when
// code is taken, so it must only be called while initializing packages.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Errors returned at runtime wrap one of them, which
// gives clients a stable code and lets callers test the kind with Is.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the code clients receive for this kind of error.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New is a shorthand for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is reports whether err is e or wraps it. A nil receiver matches only a
// nil error, including typed nils.
func (e *Error) Is(err error) bool {
	if e == nil {
		return errIsNil(err)
	}
	found := false
	walk(err, func(c error) bool {
		found = c == e
		return !found
	})
	return found
}

// Wrap adds description in front of err. The stack trace is recorded at
// the innermost wrap only. Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format prints the stack trace for %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, e.Error())
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%+v", stackTrace(e))
	}
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// deferred directly.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// Field wraps err with the name of the invalid field. Nil stays nil.
func Field(field string, err error, description string, args ...interface{}) error {
	if errIsNil(err) {
		return nil
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	if description == "" {
		return Wrap(err, field)
	}
	return Wrap(err, field+": "+description)
}

// Append joins all non nil errors. The result reports the first error as
// its cause, so its code is the code of the first failure.
func Append(errs ...error) error {
	var set []error
	for _, e := range errs {
		if !errIsNil(e) {
			set = append(set, e)
		}
	}
	switch len(set) {
	case 0:
		return nil
	case 1:
		return set[0]
	}
	msgs := make([]string, len(set))
	for i, e := range set {
		msgs[i] = e.Error()
	}
	return &joinedError{first: set[0], msg: strings.Join(msgs, "; ")}
}

type joinedError struct {
	first error
	msg   string
}

func (e *joinedError) Error() string { return e.msg }

func (e *joinedError) Cause() error { return e.first }

type causer interface {
	Cause() error
}

// walk calls fn for err and each error it wraps, outermost first, until fn
// returns false.
func walk(err error, fn func(error) bool) {
	for err != nil && fn(err) {
		c, ok := err.(causer)
		if !ok {
			return
		}
		err = c.Cause()
	}
}

// stackTrace returns the outermost stack trace carried by err, or nil.
func stackTrace(err error) errors.StackTrace {
	var st errors.StackTrace
	walk(err, func(c error) bool {
		if t, ok := c.(interface{ StackTrace() errors.StackTrace }); ok {
			st = t.StackTrace()
			return false
		}
		return true
	})
	return st
}

// errIsNil is true for nil and for typed nil pointers.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
