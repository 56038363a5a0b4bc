package weave

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()
	_, ok := GetHeight(ctx)
	assert.False(t, ok)

	ctx = WithHeight(ctx, 7)
	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.EqualValues(t, 7, h)
	assert.Panics(t, func() { WithHeight(ctx, 9) })

	// log info does not touch other values
	h, _ = GetHeight(WithLogInfo(ctx, "escrow", "abc"))
	assert.EqualValues(t, 7, h)
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()
	assert.Panics(t, func() { GetChainID(ctx) })
	assert.Panics(t, func() { WithChainID(ctx, "bad") })

	ctx = WithChainID(ctx, "escrow-test")
	assert.Equal(t, "escrow-test", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "escrow-other") })
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))

	assert.Equal(t, DefaultLogger, GetLogger(context.Background()))

	ctx := WithLogger(context.Background(), logger)
	assert.Equal(t, logger, GetLogger(ctx))

	GetLogger(WithLogInfo(ctx, "path", "escrow/take")).Info("delivered")
	assert.Contains(t, buf.String(), "path=escrow/take")
	assert.Contains(t, buf.String(), "delivered")
}

func TestChainID(t *testing.T) {
	cases := map[string]bool{
		"":                         false,
		"short":                    false,
		"escrow-test":              true,
		"escrow_dev_01":            true,
		"with space":               false,
		"chain-id-way-over-twenty": false,
	}
	for id, valid := range cases {
		t.Run(id, func(t *testing.T) {
			assert.Equal(t, valid, IsValidChainID(id))
		})
	}
}
