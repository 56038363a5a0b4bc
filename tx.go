package weave

import (
	"reflect"

	"github.com/iov-one/nftescrow/errors"
)

// Marshaller serializes a value. Implementations may validate first.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a value that can be stored and loaded back. Unmarshal
// usually requires a pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a requested state change, such as opening or taking an escrow. It
// carries no authentication, that lives in the enclosing Tx.
type Msg interface {
	Persistent
	// Path routes the message to its handler, for example "escrow/open".
	// It must match [0-9A-Za-z_\-/]+.
	Path() string
	// Validate checks the message fields without reading any state.
	Validate() error
}

// Tx is a client submitted transaction: one message together with
// whatever the decorators need, signatures in particular.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns the path of the message carried by tx or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into destination, which must point to a
// value of the message type, and validates it.
//
//   var msg escrow.OpenMsg
//   if err := weave.LoadMsg(tx, &msg); err != nil {
//       return err
//   }
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot get transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrInvalidMsg, "transaction carries no message")
	}

	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src := reflect.Indirect(reflect.ValueOf(msg))
	if !src.Type().AssignableTo(dst.Elem().Type()) {
		return errors.Wrapf(errors.ErrInvalidType, "want %T message, got %T", destination, msg)
	}
	dst.Elem().Set(src)

	return errors.Wrap(msg.Validate(), "invalid message")
}
