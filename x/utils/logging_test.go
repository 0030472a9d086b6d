package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/store"
	"github.com/algobounty/weave/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := weave.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&buf)))
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bounty/fund"}}
	db := store.MemStore()

	ok := &weavetest.Handler{DeliverResult: weave.DeliverResult{Log: "Funded bounty successfully"}}
	_, err := NewLogging().Deliver(ctx, db, tx, ok)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Funded bounty successfully")
	assert.Contains(t, buf.String(), "path=bounty/fund")
	assert.Contains(t, buf.String(), "I[")

	buf.Reset()
	failing := &weavetest.Handler{CheckErr: errors.ErrAmount}
	_, err = NewLogging().Check(ctx, db, tx, failing)
	assert.True(t, errors.ErrAmount.Is(err))
	assert.Contains(t, buf.String(), "E[")
	assert.Contains(t, buf.String(), "invalid amount")
}
