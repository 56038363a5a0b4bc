package cash

import (
	"github.com/iov-one/nftescrow/errors"
)

// x/cash reserves 300 ~ 309.
var (
	ErrInvalidCurrency = errors.Register(300, "invalid currency")
)
