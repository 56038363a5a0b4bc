package errors

// Root errors shared by all extensions. x/cash, x/nft and x/escrow register
// their own codes next to these.
var (
	// ErrUnauthorized means a required signature or derived authority is
	// missing, for example a non maker cancelling an escrow.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrInvalidMsg means the transaction message could not be processed.
	ErrInvalidMsg = Register(4, "invalid message")

	// ErrInvalidModel means a record failed validation and cannot be stored.
	ErrInvalidModel = Register(5, "invalid model")

	// ErrDuplicate means a record with the same key already exists.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that correct code never reaches.
	ErrHuman = Register(7, "coding error")

	ErrEmpty = Register(9, "value is empty")

	ErrInvalidState = Register(10, "invalid state")

	// ErrInvalidType means a value is not of the expected Go type.
	ErrInvalidType = Register(11, "invalid type")

	// ErrInsufficientAmount means an account cannot cover a payment.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	ErrInvalidAmount = Register(13, "invalid amount")

	ErrInvalidInput = Register(14, "invalid input")

	// ErrOverflow means a result does not fit its type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase means the underlying storage failed.
	ErrDatabase = Register(17, "database")

	// ErrPanic wraps a recovered panic. Its message is never shown to
	// clients outside of debug mode.
	ErrPanic = Register(111222, "panic")
)
