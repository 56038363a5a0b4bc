// Package assert holds the few test assertions shared by the escrow chain
// packages. Compared to testify it understands error kinds registered in
// the errors package.
package assert

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// Tester is the part of testing.TB the assertions need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test unless value is nil or a typed nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of wrapped errors.
		t.Fatalf("want nil, got %+v", value)
	}
}

// isNil reports typed nils as nil too. Kinds that cannot be nil never are.
func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails the test unless want and got are deeply equal. Both values
// are dumped on failure.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if reflect.DeepEqual(want, got) {
		return
	}
	t.Fatalf("values differ\nwant: %s got: %s", dump.Sdump(want), dump.Sdump(got))
}

var dump = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

// Panics fails the test if fn returns without panicking.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
}

// IsErr fails the test unless got is of the kind want. A nil want only
// matches a nil got.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if isNil(want) {
		if !isNil(got) {
			t.Fatalf("want no error, got %+v", got)
		}
		return
	}
	kind, ok := want.(interface{ Is(error) bool })
	if !ok || !kind.Is(got) {
		t.Fatalf("want %q error, got %+v", want, got)
	}
}
