package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/store"
	"github.com/iov-one/nftescrow/weavetest"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx := weave.WithLogger(context.Background(), logger)
	db := store.MemStore()

	l := NewLogging()
	_, err := l.Deliver(ctx, db, nil, &weavetest.Handler{DeliverResult: weave.DeliverResult{Log: "all good"}})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "all good")

	buf.Reset()
	_, err = l.Deliver(ctx, db, nil, &weavetest.Handler{DeliverErr: errors.ErrUnauthorized.New("not the maker")})
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "not the maker")
}
