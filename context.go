package weave

import (
	"context"
	"fmt"
	"regexp"

	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block height, the chain ID and the logger through
// the handler stack. Use the With and Get helpers of this package to
// access them.
type Context = context.Context

type (
	heightKey  struct{}
	chainIDKey struct{}
	loggerKey  struct{}
)

var (
	// DefaultLogger is returned by GetLogger when no logger was set.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID reports whether id is 6 to 20 characters of
	// [a-zA-Z0-9_-].
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight sets the block height. It panics if a height is already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Tried to set height after it was already set")
	}
	return context.WithValue(ctx, heightKey{}, height)
}

// GetHeight returns the block height and whether it was set.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey{}).(int64)
	return h, ok
}

// WithChainID sets the chain ID. It panics if one is already set or if
// chainID is not valid.
func WithChainID(ctx Context, chainID string) Context {
	if _, ok := ctx.Value(chainIDKey{}).(string); ok {
		panic("Chain ID already set in Context")
	}
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("Invalid chain ID: %q", chainID))
	}
	return context.WithValue(ctx, chainIDKey{}, chainID)
}

// GetChainID returns the chain ID. The app always sets it before running a
// transaction, so a missing value panics.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey{}).(string)
	if !ok {
		panic("Chain id is not in context")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithLogInfo returns ctx with a logger that adds keyvals to every entry.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

// GetLogger returns the context logger or DefaultLogger.
func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
